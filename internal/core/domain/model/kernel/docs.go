// Package kernel provides the value objects shared by every aggregate of the
// food delivery domain.
//
// The package includes:
//   - UUID: identifier for orders, users, restaurants and menu items
//   - Money: exact, non-negative decimal amount used for prices and totals
//
// Both types are immutable and safe for concurrent use.
package kernel
