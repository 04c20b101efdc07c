// Package services provides domain services of the food delivery system that
// span more than one aggregate or need the acting party.
//
// The package includes:
//   - OrderStateMachine: per-transition authorization, status validation and
//     the notification/broadcast plan of every order transition
//   - RiderVisibleTo: the policy deciding when a customer may see the assigned rider
package services
