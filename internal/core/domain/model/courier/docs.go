// Package courier provides domain entities and business logic for courier
// management in the restaurant system. It implements the Courier aggregate
// root with availability tracking and position updates for the live
// tracking simulation.
//
// The package includes:
//   - Courier: the aggregate root with identity, availability, and position
//   - Status: the availability state machine (Available -> OnOrder -> Delivering -> Available)
//
// Key business rules:
//   - A courier works at most one order at a time
//   - Assignment requires the Available status
//   - Live tracking only runs while Delivering
//   - Only Available couriers can be removed from the registry
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package courier
