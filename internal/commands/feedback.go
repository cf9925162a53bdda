package commands

import (
	"log"

	"slashkit/pkg/command"
	"slashkit/pkg/component"
	"slashkit/pkg/dispatch"
)

func registerFeedback(reg *command.Registry, d *dispatch.Dispatcher) error {
	if err := d.HandleModal("feedback", handleFeedbackSubmit); err != nil {
		return err
	}

	return reg.Register(&command.Definition{
		Name:        "feedback",
		Description: "Send feedback to the bot owners",
		Handler:     handleFeedback,
	})
}

func handleFeedback(ctx *command.Context) error {
	subject, err := component.NewTextInput(
		component.TextShort, "feedback-subject", "Subject",
		component.WithLengthRange(3, 80),
	)
	if err != nil {
		return err
	}
	body, err := component.NewTextInput(
		component.TextParagraph, "feedback-body", "What's on your mind?",
		component.WithInputPlaceholder("Bugs, ideas, complaints..."),
		component.WithLengthRange(10, 1000),
	)
	if err != nil {
		return err
	}

	modal, err := component.NewModal("feedback", "Send feedback", subject, body)
	if err != nil {
		return err
	}
	return dispatch.RespondModal(ctx.Session, ctx.Event, modal)
}

func handleFeedbackSubmit(ctx *command.Context) error {
	subject := ctx.ModalValue("feedback-subject")
	body := ctx.ModalValue("feedback-body")
	log.Printf("[INFO] feedback received: %q (%d chars)", subject, len(body))
	return dispatch.RespondEphemeral(ctx.Session, ctx.Event, "Thanks! Your feedback was recorded.")
}
