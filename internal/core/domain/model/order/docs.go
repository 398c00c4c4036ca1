// Package order provides domain entities and business logic for order
// management in the restaurant system. It implements the Order aggregate
// root with lifecycle management across three coupled state dimensions.
//
// The package includes:
//   - Order: the aggregate root holding line items, totals, and references
//   - Status: kitchen workflow state machine (Pending -> Preparing -> Ready -> Completed, Cancelled)
//   - PaymentStatus / PaymentMethod: payment state
//   - DeliveryStatus: courier progress for delivery orders only
//   - LineItem: an immutable product snapshot with quantity and note
//
// Key business rules:
//   - Orders must contain at least one line item; totals derive from items
//   - Delivery fields only apply to delivery orders
//   - Marking a delivery order Delivered forces the order status to Completed
//   - Completed and Cancelled are terminal; orders are never deleted
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
