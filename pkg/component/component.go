// Package component builds and validates interactive message components
// (buttons, select menus, text inputs, modals) before they are handed to
// Discord. All constructors are pure: they validate against the platform
// bounds, return an immutable value, and never touch the network.
package component

import (
	"github.com/bwmarrin/discordgo"
	"github.com/oklog/ulid/v2"
)

// Platform-imposed bounds.
const (
	MaxRowComponents  = 5
	MaxSelectOptions  = 25
	MaxModalInputs    = 5
	MaxCustomIDLength = 100
)

// ButtonStyle selects the visual style of a button.
type ButtonStyle int

const (
	StylePrimary   ButtonStyle = 1
	StyleSecondary ButtonStyle = 2
	StyleSuccess   ButtonStyle = 3
	StyleDanger    ButtonStyle = 4
	StyleLink      ButtonStyle = 5
)

// TextInputStyle selects single-line or paragraph text inputs.
type TextInputStyle int

const (
	TextShort     TextInputStyle = 1
	TextParagraph TextInputStyle = 2
)

// Emoji is a partial emoji attached to a button or select option.
// A bare unicode emoji has only Name set.
type Emoji struct {
	Name     string
	ID       string
	Animated bool
}

func (e Emoji) isZero() bool { return e.Name == "" && e.ID == "" }

func (e Emoji) discord() *discordgo.ComponentEmoji {
	if e.isZero() {
		return nil
	}
	return &discordgo.ComponentEmoji{Name: e.Name, ID: e.ID, Animated: e.Animated}
}

// Component is a node that can sit inside an action row.
type Component interface {
	messageComponent() discordgo.MessageComponent
	kind() componentKind
}

type componentKind int

const (
	kindButton componentKind = iota
	kindSelect
	kindTextInput
)

// Button is an immutable, validated button.
type Button struct {
	Style    ButtonStyle
	Label    string
	Emoji    Emoji
	CustomID string
	URL      string
	Disabled bool
}

func (b Button) kind() componentKind { return kindButton }

func (b Button) messageComponent() discordgo.MessageComponent {
	return discordgo.Button{
		Style:    discordgo.ButtonStyle(b.Style),
		Label:    b.Label,
		Emoji:    b.Emoji.discord(),
		CustomID: b.CustomID,
		URL:      b.URL,
		Disabled: b.Disabled,
	}
}

// SelectOption is one entry of a select menu.
type SelectOption struct {
	Label       string
	Value       string
	Description string
	Emoji       Emoji
	Default     bool
}

// Select is an immutable, validated select menu.
type Select struct {
	CustomID    string
	Options     []SelectOption
	Placeholder string
	MinValues   int
	MaxValues   int
	Disabled    bool
}

func (s Select) kind() componentKind { return kindSelect }

func (s Select) messageComponent() discordgo.MessageComponent {
	opts := make([]discordgo.SelectMenuOption, len(s.Options))
	for i, o := range s.Options {
		opts[i] = discordgo.SelectMenuOption{
			Label:       o.Label,
			Value:       o.Value,
			Description: o.Description,
			Emoji:       o.Emoji.discord(),
			Default:     o.Default,
		}
	}
	min := s.MinValues
	return discordgo.SelectMenu{
		CustomID:    s.CustomID,
		Options:     opts,
		Placeholder: s.Placeholder,
		MinValues:   &min,
		MaxValues:   s.MaxValues,
		Disabled:    s.Disabled,
	}
}

// TextInput is a single text field of a modal.
type TextInput struct {
	Style       TextInputStyle
	CustomID    string
	Label       string
	Placeholder string
	Value       string
	MinLength   int
	MaxLength   int
	Required    bool
}

func (t TextInput) kind() componentKind { return kindTextInput }

func (t TextInput) messageComponent() discordgo.MessageComponent {
	return discordgo.TextInput{
		CustomID:    t.CustomID,
		Label:       t.Label,
		Style:       discordgo.TextInputStyle(t.Style),
		Placeholder: t.Placeholder,
		Value:       t.Value,
		Required:    t.Required,
		MinLength:   t.MinLength,
		MaxLength:   t.MaxLength,
	}
}

// Row is an ordered action row of components.
type Row struct {
	components []Component
}

// Components returns a copy of the row's components.
func (r Row) Components() []Component {
	out := make([]Component, len(r.components))
	copy(out, r.components)
	return out
}

// MessageComponent renders the row as a discordgo actions row. Ownership of
// the rendered value transfers to the caller; the Row itself stays untouched.
func (r Row) MessageComponent() discordgo.MessageComponent {
	comps := make([]discordgo.MessageComponent, len(r.components))
	for i, c := range r.components {
		comps[i] = c.messageComponent()
	}
	return discordgo.ActionsRow{Components: comps}
}

// Rows renders a set of rows to the discordgo components field of a message.
func Rows(rows ...Row) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, len(rows))
	for i, r := range rows {
		out[i] = r.MessageComponent()
	}
	return out
}

// Modal is a popup form of text inputs.
type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

// ResponseData renders the modal as interaction response data.
func (m Modal) ResponseData() *discordgo.InteractionResponseData {
	rows := make([]discordgo.MessageComponent, len(m.Inputs))
	for i, in := range m.Inputs {
		rows[i] = discordgo.ActionsRow{Components: []discordgo.MessageComponent{in.messageComponent()}}
	}
	return &discordgo.InteractionResponseData{
		CustomID:   m.CustomID,
		Title:      m.Title,
		Components: rows,
	}
}

// DisableAll returns copies of rows with every button and select disabled.
// Used to freeze a message's components after a terminal interaction.
func DisableAll(rows ...Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		comps := make([]Component, len(r.components))
		for j, c := range r.components {
			switch v := c.(type) {
			case Button:
				v.Disabled = true
				comps[j] = v
			case Select:
				v.Disabled = true
				comps[j] = v
			default:
				comps[j] = c
			}
		}
		out[i] = Row{components: comps}
	}
	return out
}

// CustomIDs walks rows and collects every custom id, in row order. Link
// buttons carry none and are skipped. Useful for wiring component handlers to
// an already-built tree.
func CustomIDs(rows ...Row) []string {
	var ids []string
	for _, r := range rows {
		for _, c := range r.components {
			switch v := c.(type) {
			case Button:
				if v.CustomID != "" {
					ids = append(ids, v.CustomID)
				}
			case Select:
				ids = append(ids, v.CustomID)
			case TextInput:
				ids = append(ids, v.CustomID)
			}
		}
	}
	return ids
}

// newCustomID generates a unique custom id for components built without one.
func newCustomID() string {
	return ulid.Make().String()
}
