// Package order provides the Order aggregate of the food delivery domain.
//
// The package includes:
//   - Order: the aggregate root holding customer, restaurant, optional rider, status and total
//   - Line: a menu item snapshot with the unit price at order time
//   - Payment: the stub payment record created with every order
//   - Status: the lifecycle PLACED → ACCEPTED → PREPARING → READY → PICKED → DELIVERED, plus CANCELLED
//
// Key business rules:
//   - total is computed once from authoritative menu prices and never recomputed
//   - a rider is assigned at most once; claiming keeps READY and otherwise yields PREPARING
//   - acceptance requires PLACED; the generic update only checks the target belongs to the updatable set
//
// Who may perform a transition is decided by services.OrderStateMachine, not here.
package order
