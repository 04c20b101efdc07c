// Package realtime names the broadcast groups and event types pushed to connected clients.
package realtime

import "fooddelivery/internal/core/domain/model/kernel"

// Channel is a logical broadcast group a connection can join.
type Channel string

// RidersOnline is joined by every connected rider.
const RidersOnline Channel = "RIDERS_ONLINE"

// UserChannel is joined by every authenticated connection of the user.
func UserChannel(userID kernel.UUID) Channel {
	return Channel("USER:" + userID.String())
}

// RestaurantChannel is joined by the connections of the restaurant owner.
func RestaurantChannel(restaurantID kernel.UUID) Channel {
	return Channel("RESTAURANT:" + restaurantID.String())
}

func (c Channel) String() string {
	return string(c)
}

// Event types emitted on channels.
const (
	EventOrderStatusUpdate = "ORDER_STATUS_UPDATE"
	EventNotification      = "NOTIFICATION"
	EventNewOrder          = "NEW_ORDER"
	EventOrderAssigned     = "ORDER_ASSIGNED"
	EventOrderAvailable    = "ORDER_AVAILABLE"
	EventOrderWithdrawn    = "ORDER_WITHDRAWN"
	EventAvailableOrders   = "AVAILABLE_ORDERS"
	EventPong              = "pong"
)

// Event is a typed payload addressed to one channel.
type Event struct {
	Type    string
	Payload any
}
