package kernel_test

import (
	"encoding/json"
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("rounds to cents", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))
		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero is allowed but not positive", func(t *testing.T) {
		assert.False(t, kernel.ZeroMoney().IsPositive())
		assert.Equal(t, "0.00", kernel.ZeroMoney().String())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	total := kernel.MustMoney("10.00").Times(1).Add(kernel.MustMoney("5.00").Times(2))

	assert.Equal(t, "20.00", total.String())
	assert.True(t, total.IsEqual(kernel.MustMoney("20")))
}

func TestMoneyFromString_Invalid(t *testing.T) {
	_, err := kernel.MoneyFromString("ten")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMoney_JSON(t *testing.T) {
	raw, err := json.Marshal(kernel.MustMoney("7.5"))
	require.NoError(t, err)
	assert.JSONEq(t, `"7.50"`, string(raw))

	var fromNumber kernel.Money
	require.NoError(t, json.Unmarshal([]byte(`12.25`), &fromNumber))
	assert.Equal(t, "12.25", fromNumber.String())

	var negative kernel.Money
	require.Error(t, json.Unmarshal([]byte(`"-1"`), &negative))
}
