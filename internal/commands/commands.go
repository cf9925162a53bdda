// Package commands holds the example bot's command set. Setup registers
// everything explicitly during startup; there is no reflective discovery.
package commands

import (
	"slashkit/pkg/command"
	"slashkit/pkg/dispatch"
)

// Setup registers every demo command and its component handlers.
func Setup(reg *command.Registry, d *dispatch.Dispatcher) error {
	registrations := []func(*command.Registry, *dispatch.Dispatcher) error{
		registerPing,
		registerPoll,
		registerQuote,
		registerFeedback,
	}
	for _, register := range registrations {
		if err := register(reg, d); err != nil {
			return err
		}
	}
	return nil
}
