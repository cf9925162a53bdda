package commands

import (
	"slashkit/pkg/command"
	"slashkit/pkg/dispatch"
)

func registerPing(reg *command.Registry, _ *dispatch.Dispatcher) error {
	return reg.Register(&command.Definition{
		Name:        "ping",
		Description: "Check that the bot is responsive",
		Handler: func(ctx *command.Context) error {
			return dispatch.RespondEphemeral(ctx.Session, ctx.Event, "🏓 Pong!")
		},
	})
}
