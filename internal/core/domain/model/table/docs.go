// Package table provides domain entities and business logic for seating
// management in the restaurant system. It implements the Table aggregate
// root tracked for occupancy independent of orders.
//
// Key business rules:
//   - Seating an order marks the table Occupied and binds the order
//   - Clearing a table resets it to Available and drops all bindings
//   - An Occupied table cannot be deleted
package table
