package component

// ButtonOpt adjusts a button under construction.
type ButtonOpt func(*Button)

// WithEmoji sets the button emoji.
func WithEmoji(e Emoji) ButtonOpt { return func(b *Button) { b.Emoji = e } }

// WithCustomID overrides the generated custom id.
func WithCustomID(id string) ButtonOpt { return func(b *Button) { b.CustomID = id } }

// WithURL sets the target of a link-style button.
func WithURL(url string) ButtonOpt { return func(b *Button) { b.URL = url } }

// ButtonDisabled builds the button in a disabled state.
func ButtonDisabled() ButtonOpt { return func(b *Button) { b.Disabled = true } }

// NewButton builds a validated button. A button must carry a label or an
// emoji. Link buttons require a URL and must not carry a custom id; any other
// style gets a generated custom id when none is supplied.
func NewButton(style ButtonStyle, label string, opts ...ButtonOpt) (Button, error) {
	b := Button{Style: style, Label: label}
	for _, opt := range opts {
		opt(&b)
	}

	if style < StylePrimary || style > StyleLink {
		return Button{}, invalid("button.style", "unknown style %d", style)
	}
	if b.Label == "" && b.Emoji.isZero() {
		return Button{}, invalid("button.label", "a label or an emoji is required")
	}
	if style == StyleLink {
		if b.URL == "" {
			return Button{}, invalid("button.url", "link buttons require a url")
		}
		if b.CustomID != "" {
			return Button{}, invalid("button.custom_id", "link buttons must not carry a custom id")
		}
		return b, nil
	}
	if b.URL != "" {
		return Button{}, invalid("button.url", "only link buttons may carry a url")
	}
	if b.CustomID == "" {
		b.CustomID = newCustomID()
	}
	if len(b.CustomID) > MaxCustomIDLength {
		return Button{}, invalid("button.custom_id", "exceeds %d characters", MaxCustomIDLength)
	}
	return b, nil
}

// SelectOpt adjusts a select menu under construction.
type SelectOpt func(*Select)

// WithSelectCustomID overrides the generated custom id.
func WithSelectCustomID(id string) SelectOpt { return func(s *Select) { s.CustomID = id } }

// WithPlaceholder sets the text shown before a choice is made.
func WithPlaceholder(text string) SelectOpt { return func(s *Select) { s.Placeholder = text } }

// WithValueRange sets how many options must and may be chosen.
func WithValueRange(min, max int) SelectOpt {
	return func(s *Select) {
		s.MinValues = min
		s.MaxValues = max
	}
}

// SelectDisabled builds the select in a disabled state.
func SelectDisabled() SelectOpt { return func(s *Select) { s.Disabled = true } }

// NewSelect builds a validated select menu. Options must number between 1 and
// MaxSelectOptions, and 0 <= MinValues <= MaxValues <= len(options). Both
// values default to 1.
func NewSelect(options []SelectOption, opts ...SelectOpt) (Select, error) {
	s := Select{Options: append([]SelectOption(nil), options...), MinValues: 1, MaxValues: 1}
	for _, opt := range opts {
		opt(&s)
	}

	if len(s.Options) == 0 {
		return Select{}, invalid("select.options", "at least one option is required")
	}
	if len(s.Options) > MaxSelectOptions {
		return Select{}, invalid("select.options", "%d options exceeds the maximum of %d", len(s.Options), MaxSelectOptions)
	}
	for i, o := range s.Options {
		if o.Label == "" {
			return Select{}, invalid("select.options", "option %d has an empty label", i)
		}
		if o.Value == "" {
			return Select{}, invalid("select.options", "option %d has an empty value", i)
		}
	}
	if s.MinValues < 0 {
		return Select{}, invalid("select.min_values", "must not be negative")
	}
	if s.MinValues > s.MaxValues {
		return Select{}, invalid("select.min_values", "%d exceeds max_values %d", s.MinValues, s.MaxValues)
	}
	if s.MaxValues > len(s.Options) {
		return Select{}, invalid("select.max_values", "%d exceeds the %d available options", s.MaxValues, len(s.Options))
	}
	if s.CustomID == "" {
		s.CustomID = newCustomID()
	}
	if len(s.CustomID) > MaxCustomIDLength {
		return Select{}, invalid("select.custom_id", "exceeds %d characters", MaxCustomIDLength)
	}
	return s, nil
}

// NewRow builds a validated action row for a message: 1..MaxRowComponents
// buttons, or exactly one select. Text inputs live in modals only; NewModal
// builds their rows itself.
func NewRow(components ...Component) (Row, error) {
	if len(components) == 0 {
		return Row{}, invalid("row.components", "at least one component is required")
	}
	if len(components) > MaxRowComponents {
		return Row{}, invalid("row.components", "%d components exceeds the maximum of %d", len(components), MaxRowComponents)
	}
	for i, c := range components {
		switch c.kind() {
		case kindButton:
			continue
		case kindTextInput:
			return Row{}, invalid("row.components", "component %d is a text input, which only modals may carry", i)
		}
		// A select claims the whole row.
		if len(components) > 1 {
			return Row{}, invalid("row.components", "component %d must be alone in its row", i)
		}
	}
	return Row{components: append([]Component(nil), components...)}, nil
}

// TextInputOpt adjusts a text input under construction.
type TextInputOpt func(*TextInput)

// WithInputPlaceholder sets the placeholder shown in an empty field.
func WithInputPlaceholder(text string) TextInputOpt {
	return func(t *TextInput) { t.Placeholder = text }
}

// WithInputValue pre-fills the field.
func WithInputValue(value string) TextInputOpt { return func(t *TextInput) { t.Value = value } }

// WithLengthRange bounds the accepted input length.
func WithLengthRange(min, max int) TextInputOpt {
	return func(t *TextInput) {
		t.MinLength = min
		t.MaxLength = max
	}
}

// InputOptional marks the field as skippable.
func InputOptional() TextInputOpt { return func(t *TextInput) { t.Required = false } }

// NewTextInput builds a validated modal text field. Fields are required by
// default, matching the platform default.
func NewTextInput(style TextInputStyle, customID, label string, opts ...TextInputOpt) (TextInput, error) {
	t := TextInput{Style: style, CustomID: customID, Label: label, Required: true}
	for _, opt := range opts {
		opt(&t)
	}

	if style != TextShort && style != TextParagraph {
		return TextInput{}, invalid("text_input.style", "unknown style %d", style)
	}
	if t.CustomID == "" {
		return TextInput{}, invalid("text_input.custom_id", "a custom id is required")
	}
	if len(t.CustomID) > MaxCustomIDLength {
		return TextInput{}, invalid("text_input.custom_id", "exceeds %d characters", MaxCustomIDLength)
	}
	if t.Label == "" {
		return TextInput{}, invalid("text_input.label", "a label is required")
	}
	if t.MinLength < 0 || (t.MaxLength > 0 && t.MinLength > t.MaxLength) {
		return TextInput{}, invalid("text_input.min_length", "invalid length range %d..%d", t.MinLength, t.MaxLength)
	}
	return t, nil
}

// NewModal builds a validated modal of 1..MaxModalInputs text inputs.
func NewModal(customID, title string, inputs ...TextInput) (Modal, error) {
	if customID == "" {
		return Modal{}, invalid("modal.custom_id", "a custom id is required")
	}
	if len(customID) > MaxCustomIDLength {
		return Modal{}, invalid("modal.custom_id", "exceeds %d characters", MaxCustomIDLength)
	}
	if title == "" {
		return Modal{}, invalid("modal.title", "a title is required")
	}
	if len(inputs) == 0 {
		return Modal{}, invalid("modal.inputs", "at least one text input is required")
	}
	if len(inputs) > MaxModalInputs {
		return Modal{}, invalid("modal.inputs", "%d inputs exceeds the maximum of %d", len(inputs), MaxModalInputs)
	}
	return Modal{CustomID: customID, Title: title, Inputs: append([]TextInput(nil), inputs...)}, nil
}
