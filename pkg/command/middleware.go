package command

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Middleware wraps a handler with a cross-cutting concern (access checks,
// logging). The first middleware in a chain is the outermost.
type Middleware func(Handler) Handler

// Apply wraps h with mws, first middleware outermost.
func Apply(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// GuildOnly rejects interactions arriving outside a guild with an ephemeral
// notice instead of running the handler.
func GuildOnly() Middleware {
	return func(next Handler) Handler {
		return func(ctx *Context) error {
			if ctx.GuildID() == "" {
				return refuse(ctx, "This command only works in a server.")
			}
			return next(ctx)
		}
	}
}

// RequirePermissions rejects members lacking every bit of perms with an
// ephemeral notice instead of running the handler.
func RequirePermissions(perms int64) Middleware {
	return func(next Handler) Handler {
		return func(ctx *Context) error {
			m := ctx.Event.Member
			if m == nil || m.Permissions&perms != perms {
				return refuse(ctx, "You don't have permission to use this command.")
			}
			return next(ctx)
		}
	}
}

// WithRecovery converts a handler panic into a returned error, so the caller
// reports it like any other failure. The dispatcher already isolates panics at
// the goroutine boundary; this variant is for handlers invoked outside it.
func WithRecovery() Middleware {
	return func(next Handler) Handler {
		return func(ctx *Context) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("handler panic: %v", rec)
				}
			}()
			return next(ctx)
		}
	}
}

// WithLog records each invocation before running the handler.
func WithLog() Middleware {
	return func(next Handler) Handler {
		return func(ctx *Context) error {
			name := ctx.CustomID
			if ctx.Command != nil {
				name = ctx.Command.Name
			}
			user := "unknown"
			if u := ctx.User(); u != nil {
				user = u.Username
			}
			log.Printf("[INFO] %s invoked by %s (guild %s)", name, user, scopeLabel(ctx.GuildID()))
			return next(ctx)
		}
	}
}

func refuse(ctx *Context, message string) error {
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
