package views_test

import (
	"encoding/json"
	"testing"
	"time"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignedOrder(t *testing.T, status order.Status) (*order.Order, kernel.UUID) {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), "Dal", 2, kernel.MustMoney("5.00"))
	require.NoError(t, err)
	placed, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []order.Line{line}, time.Now())
	require.NoError(t, err)

	riderID := kernel.NewUUID()
	o, err := order.RestoreOrder(placed.ID(), placed.CustomerID(), placed.RestaurantID(), &riderID,
		status, placed.Total(), placed.Lines(), placed.Payment(), placed.CreatedAt())
	require.NoError(t, err)
	return o, riderID
}

func TestNewOrder_RiderRedaction(t *testing.T) {
	o, riderID := assignedOrder(t, order.Preparing)

	assert.Nil(t, views.NewOrder(o, actor.Customer).RiderID)
	require.NotNil(t, views.NewOrder(o, actor.Restaurant).RiderID)
	assert.Equal(t, riderID.String(), *views.NewOrder(o, actor.Rider).RiderID)

	picked, _ := assignedOrder(t, order.Picked)
	assert.NotNil(t, views.NewOrder(picked, actor.Customer).RiderID)
}

func TestNewOrder_JSON(t *testing.T) {
	o, _ := assignedOrder(t, order.Ready)

	raw, err := json.Marshal(views.NewOrder(o, actor.Customer))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotContains(t, body, "riderId")
	assert.Equal(t, "READY", body["status"])
	assert.Equal(t, "10.00", body["total"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Dal", items[0].(map[string]any)["name"])
	payment := body["payment"].(map[string]any)
	assert.Equal(t, "SUCCESS", payment["status"])
}
