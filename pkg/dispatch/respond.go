package dispatch

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"slashkit/pkg/command"
	"slashkit/pkg/component"
)

// Respond sends a public message response to an interaction.
func Respond(s command.Session, i *discordgo.InteractionCreate, content string, rows ...component.Row) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: component.Rows(rows...),
		},
	})
}

// RespondEphemeral sends a message only the interacting user can see.
func RespondEphemeral(s command.Session, i *discordgo.InteractionCreate, content string, rows ...component.Row) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: component.Rows(rows...),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondEmbed sends a public embed response.
func RespondEmbed(s command.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

// RespondEmbedEphemeral sends an embed only the interacting user can see.
func RespondEmbedEphemeral(s command.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondDeferred acknowledges the interaction without content, buying the
// handler time before an EditResponse or Followup.
func RespondDeferred(s command.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

// RespondUpdate replaces the message the interacted component sits on.
func RespondUpdate(s command.Session, i *discordgo.InteractionCreate, content string, rows ...component.Row) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: component.Rows(rows...),
		},
	})
}

// RespondModal opens a modal built with component.NewModal.
func RespondModal(s command.Session, i *discordgo.InteractionCreate, m component.Modal) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: m.ResponseData(),
	})
}

// EditResponse edits an already-sent interaction response.
func EditResponse(s command.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
	return err
}

// Followup sends a public followup message.
func Followup(s command.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{Content: content})
	return err
}

// FollowupEphemeral sends a followup only the interacting user can see.
func FollowupEphemeral(s command.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}

// Error delivers a failure acknowledgment to the interacting user. When the
// interaction was already acknowledged the message goes out as an ephemeral
// followup instead; the user never sees silence or a hanging spinner.
func Error(s command.Session, i *discordgo.InteractionCreate, message string) {
	if err := RespondEphemeral(s, i, message); err == nil {
		return
	}
	if err := FollowupEphemeral(s, i, message); err != nil {
		log.Printf("[ERR] Failed to deliver error response: %v", err)
	}
}
