// Package command holds the application-command model: definitions keyed by
// name, scope, and kind; the registry that stores and resolves them; and the
// handler contract the dispatcher invokes. The registry performs no dispatch
// itself; the dispatch package looks commands up here and runs them with its
// own context.
package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Kind distinguishes slash commands from the two context-menu variants.
type Kind int

const (
	KindSlash Kind = iota
	KindMessageMenu
	KindUserMenu
)

func (k Kind) String() string {
	switch k {
	case KindSlash:
		return "slash command"
	case KindMessageMenu:
		return "message context menu"
	case KindUserMenu:
		return "user context menu"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) applicationCommandType() discordgo.ApplicationCommandType {
	switch k {
	case KindMessageMenu:
		return discordgo.MessageApplicationCommand
	case KindUserMenu:
		return discordgo.UserApplicationCommand
	default:
		return discordgo.ChatApplicationCommand
	}
}

// Handler runs a resolved command or component interaction. Errors are never
// swallowed: the dispatcher reports them back to the interacting user.
type Handler func(ctx *Context) error

// Definition describes one registrable command. GuildID empty means global
// scope. The zero Kind is a slash command.
type Definition struct {
	Name        string
	Description string
	Kind        Kind
	GuildID     string
	Options     []*discordgo.ApplicationCommandOption
	Handler     Handler

	// Optional platform gates, passed through to registration as-is.
	DefaultMemberPermissions *int64
	DMPermission             *bool
}

// ApplicationCommand renders the definition for registration with Discord.
// Context-menu commands carry no description or options on the wire.
func (d *Definition) ApplicationCommand() *discordgo.ApplicationCommand {
	ac := &discordgo.ApplicationCommand{
		Name:                     d.Name,
		Type:                     d.Kind.applicationCommandType(),
		DefaultMemberPermissions: d.DefaultMemberPermissions,
		DMPermission:             d.DMPermission,
	}
	if d.Kind == KindSlash {
		ac.Description = d.Description
		ac.Options = d.Options
	}
	return ac
}
