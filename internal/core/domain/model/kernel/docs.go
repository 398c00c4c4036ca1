// Package kernel provides core domain primitives shared by every aggregate
// in the restaurant system.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Money: a value object for monetary amounts in kuruş with locale-aware formatting
//   - GeoPoint: a value object for courier coordinates with interpolation helpers
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are immutable and safe for
// concurrent use.
package kernel
