package commands

import (
	"fmt"

	"slashkit/pkg/command"
	"slashkit/pkg/dispatch"
)

func registerQuote(reg *command.Registry, _ *dispatch.Dispatcher) error {
	return reg.Register(&command.Definition{
		Name: "Quote Message",
		Kind: command.KindMessageMenu,
		Handler: func(ctx *command.Context) error {
			msg := ctx.TargetMessage()
			if msg == nil {
				return dispatch.RespondEphemeral(ctx.Session, ctx.Event, "Couldn't find that message.")
			}
			if msg.Content == "" {
				return dispatch.RespondEphemeral(ctx.Session, ctx.Event, "That message has no quotable text.")
			}
			quote := fmt.Sprintf("> %s\n— %s", msg.Content, msg.Author.Username)
			return dispatch.Respond(ctx.Session, ctx.Event, quote)
		},
	})
}
