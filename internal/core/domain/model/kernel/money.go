package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits kept for prices and totals.
const moneyScale = 2

// Money is a non-negative amount in the restaurant's currency.
// Arithmetic is exact (shopspring/decimal), so totals never drift.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns an amount of 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney validates that amount is not negative and rounds it to cents.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount.Round(moneyScale)}, nil
}

// MoneyFromString parses a decimal string such as "12.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// MustMoney panics on invalid input. Intended for tests and constants.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies the amount by a quantity.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal exposes the amount for persistence adapters.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String always renders two fractional digits, e.g. "20.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// MarshalJSON encodes the amount as a quoted fixed-point string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted strings and bare JSON numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	parsed, err := NewMoney(amount)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
