package services

import (
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/order"
)

// RiderVisibleTo reports whether the assigned rider's identity may be shown to
// viewer for an order in status. Customers only learn who the rider is once
// the food is on its way; restaurants, riders and admins always see it.
func RiderVisibleTo(viewer actor.Role, status order.Status) bool {
	switch viewer {
	case actor.Customer:
		return status == order.Picked || status == order.Delivered
	case actor.Restaurant, actor.Rider, actor.Admin:
		return true
	case actor.Unknown:
	}
	return false
}
