package command

import (
	"github.com/bwmarrin/discordgo"
)

// Session is the slice of the bot client a handler needs to answer an
// interaction. *discordgo.Session satisfies it; tests substitute a fake.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Context is created fresh for each incoming interaction and handed to the
// resolved handler. It is not reused or persisted after the handler returns.
type Context struct {
	Session Session
	Event   *discordgo.InteractionCreate

	// Command is the resolved definition. It is nil for component and modal
	// interactions routed by custom id rather than through the registry.
	Command *Definition

	// CustomID is set for component and modal interactions.
	CustomID string
}

// User returns the invoking user, whether the interaction arrived from a
// guild (member) or a DM.
func (c *Context) User() *discordgo.User {
	if c.Event.Member != nil {
		return c.Event.Member.User
	}
	return c.Event.User
}

// GuildID returns the source guild, or "" for DMs.
func (c *Context) GuildID() string { return c.Event.GuildID }

// Options returns the slash-command options by name.
func (c *Context) Options() map[string]*discordgo.ApplicationCommandInteractionDataOption {
	data := c.Event.ApplicationCommandData()
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, opt := range data.Options {
		out[opt.Name] = opt
	}
	return out
}

// StringOption returns the named string option, or "" when absent.
func (c *Context) StringOption(name string) string {
	if opt, ok := c.Options()[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// IntOption returns the named integer option and whether it was supplied.
func (c *Context) IntOption(name string) (int64, bool) {
	if opt, ok := c.Options()[name]; ok {
		return opt.IntValue(), true
	}
	return 0, false
}

// BoolOption returns the named boolean option and whether it was supplied.
func (c *Context) BoolOption(name string) (bool, bool) {
	if opt, ok := c.Options()[name]; ok {
		return opt.BoolValue(), true
	}
	return false, false
}

// SelectValues returns the values chosen in a select-menu interaction.
func (c *Context) SelectValues() []string {
	if c.Event.Type != discordgo.InteractionMessageComponent {
		return nil
	}
	return c.Event.MessageComponentData().Values
}

// TargetMessage returns the message a message context menu was invoked on.
func (c *Context) TargetMessage() *discordgo.Message {
	data := c.Event.ApplicationCommandData()
	if data.Resolved == nil {
		return nil
	}
	return data.Resolved.Messages[data.TargetID]
}

// TargetUser returns the user a user context menu was invoked on.
func (c *Context) TargetUser() *discordgo.User {
	data := c.Event.ApplicationCommandData()
	if data.Resolved == nil {
		return nil
	}
	return data.Resolved.Users[data.TargetID]
}

// ModalValue returns the submitted value of the modal input with the given
// custom id, or "" when the field is absent.
func (c *Context) ModalValue(customID string) string {
	if c.Event.Type != discordgo.InteractionModalSubmit {
		return ""
	}
	for _, row := range c.Event.ModalSubmitData().Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if in, ok := comp.(*discordgo.TextInput); ok && in.CustomID == customID {
				return in.Value
			}
		}
	}
	return ""
}
