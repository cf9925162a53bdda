package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"slashkit/pkg/command"
	"slashkit/pkg/component"
	"slashkit/pkg/customid"
	"slashkit/pkg/dispatch"
)

// votePayload rides inside the button custom id, so a vote click carries its
// own context back without server-side state.
type votePayload struct {
	Question string `msgpack:"q"`
	Choice   string `msgpack:"c"`
}

var pollChoices = []string{"Yes", "No", "Maybe"}

func registerPoll(reg *command.Registry, d *dispatch.Dispatcher) error {
	if err := d.HandleComponentPrefix("poll", handleVote); err != nil {
		return err
	}

	return reg.Register(&command.Definition{
		Name:        "poll",
		Description: "Start a quick yes/no/maybe poll",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "question",
				Description: "What to ask",
				Required:    true,
			},
		},
		Handler: command.Apply(handlePoll, command.GuildOnly(), command.WithLog()),
	})
}

func handlePoll(ctx *command.Context) error {
	question := ctx.StringOption("question")

	buttons := make([]component.Component, 0, len(pollChoices))
	for _, choice := range pollChoices {
		id, err := customid.Encode("poll", votePayload{Question: question, Choice: choice})
		if err != nil {
			return fmt.Errorf("encode vote id: %w", err)
		}
		b, err := component.NewButton(component.StylePrimary, choice, component.WithCustomID(id))
		if err != nil {
			return err
		}
		buttons = append(buttons, b)
	}

	row, err := component.NewRow(buttons...)
	if err != nil {
		return err
	}
	return dispatch.Respond(ctx.Session, ctx.Event, "📊 "+question, row)
}

func handleVote(ctx *command.Context) error {
	var vote votePayload
	if _, err := customid.Decode(ctx.CustomID, &vote); err != nil {
		return fmt.Errorf("decode vote id: %w", err)
	}

	user := "someone"
	if u := ctx.User(); u != nil {
		user = u.Username
	}
	reply := fmt.Sprintf("**%s** voted %q on %q", user, vote.Choice, strings.TrimSpace(vote.Question))
	return dispatch.Respond(ctx.Session, ctx.Event, reply)
}
