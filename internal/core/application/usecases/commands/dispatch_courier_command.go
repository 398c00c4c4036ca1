package commands

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrDispatchCourierCommandIsNotConstructed = errors.New(
	"DispatchCourierCommand must be created via NewDispatchCourierCommand constructor",
)

// DispatchCourierCommand triggers the assignment of an available courier
// to the oldest delivery order that still has none. It represents the
// business operation of matching delivery resources with orders.
//
// Example:
//
//	cmd := NewDispatchCourierCommand()
//	err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("No orders to dispatch or no available couriers: %v", err)
//	}
type DispatchCourierCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchCourierCommand creates a new command to trigger dispatching.
// This is a parameterless command that initiates the courier-order matching.
func NewDispatchCourierCommand() DispatchCourierCommand {
	return DispatchCourierCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchCourierCommandIsNotConstructed if validation fails.
func (c DispatchCourierCommand) Validate() error {
	return c.guard.Validate(ErrDispatchCourierCommandIsNotConstructed)
}
