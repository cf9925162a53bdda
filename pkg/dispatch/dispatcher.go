// Package dispatch receives raw interaction events from the bot client,
// resolves them to a registered command or component handler, and invokes the
// handler on its own goroutine. One slow handler never delays unrelated
// events, a failed handler always produces a visible error response, and an
// unresolvable event is logged and discarded — redelivery cannot succeed
// until the registry changes.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/discordgo"

	"slashkit/pkg/command"
	"slashkit/pkg/customid"
)

// ErrDuplicateHandler is returned when a component or modal handler is
// registered under an id or prefix already taken.
var ErrDuplicateHandler = errors.New("dispatch: handler already registered")

const defaultErrorMessage = "Something went wrong while handling this interaction."
const unknownComponentMessage = "This control is no longer active."

// Dispatcher routes incoming interactions. Construct with New, register
// component handlers before the session opens, then bind Handler() to the
// session.
type Dispatcher struct {
	registry *command.Registry

	mu         sync.RWMutex
	components map[string]command.Handler // exact custom id
	prefixes   map[string]command.Handler // custom id routing prefix
	modals     map[string]command.Handler // modal custom id or prefix

	errorMessage string
	wg           sync.WaitGroup

	// drainMu orders the draining check and the in-flight claim in Dispatch
	// against Shutdown flipping the flag, so no handler can start after
	// Shutdown has begun waiting.
	drainMu  sync.RWMutex
	draining bool
}

// Option adjusts a Dispatcher.
type Option func(*Dispatcher)

// WithErrorMessage overrides the ephemeral text shown when a handler fails.
func WithErrorMessage(msg string) Option {
	return func(d *Dispatcher) { d.errorMessage = msg }
}

// New returns a Dispatcher resolving commands against reg.
func New(reg *command.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:     reg,
		components:   make(map[string]command.Handler),
		prefixes:     make(map[string]command.Handler),
		modals:       make(map[string]command.Handler),
		errorMessage: defaultErrorMessage,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleComponent routes component interactions whose custom id equals
// customID to h.
func (d *Dispatcher) HandleComponent(customID string, h command.Handler) error {
	return d.put(d.components, customID, h)
}

// HandleComponentPrefix routes component interactions whose custom id starts
// with prefix (before the ":" separator) to h. Used with the customid package
// to round-trip payloads through the id.
func (d *Dispatcher) HandleComponentPrefix(prefix string, h command.Handler) error {
	return d.put(d.prefixes, prefix, h)
}

// HandleModal routes modal submissions whose custom id equals or is prefixed
// by customID to h.
func (d *Dispatcher) HandleModal(customID string, h command.Handler) error {
	return d.put(d.modals, customID, h)
}

func (d *Dispatcher) put(table map[string]command.Handler, key string, h command.Handler) error {
	if key == "" {
		return fmt.Errorf("dispatch: empty handler key")
	}
	if h == nil {
		return fmt.Errorf("dispatch: nil handler for %q", key)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := table[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateHandler, key)
	}
	table[key] = h
	return nil
}

// Handler returns the callback to bind with session.AddHandler.
func (d *Dispatcher) Handler() func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		d.Dispatch(s, ic)
	}
}

// Dispatch resolves one event and invokes its handler on a fresh goroutine.
// During shutdown new events are dropped with a log line.
func (d *Dispatcher) Dispatch(s command.Session, ic *discordgo.InteractionCreate) {
	d.drainMu.RLock()
	defer d.drainMu.RUnlock()
	if d.draining {
		log.Printf("[WARN] Dropping interaction received during shutdown")
		return
	}

	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
		data := ic.ApplicationCommandData()
		def, err := d.registry.Resolve(data.Name, ic.GuildID, kindOf(data.CommandType))
		if err != nil {
			log.Printf("[WARN] Unhandled command interaction: %v", err)
			return
		}
		d.invoke(def.Handler, &command.Context{Session: s, Event: ic, Command: def})

	case discordgo.InteractionMessageComponent:
		id := ic.MessageComponentData().CustomID
		h, ok := d.lookupComponent(id)
		if !ok {
			log.Printf("[WARN] Unhandled component interaction: %q", id)
			d.notifyUnknown(s, ic)
			return
		}
		d.invoke(h, &command.Context{Session: s, Event: ic, CustomID: id})

	case discordgo.InteractionModalSubmit:
		id := ic.ModalSubmitData().CustomID
		h, ok := d.lookupModal(id)
		if !ok {
			log.Printf("[WARN] Unhandled modal submission: %q", id)
			d.notifyUnknown(s, ic)
			return
		}
		d.invoke(h, &command.Context{Session: s, Event: ic, CustomID: id})

	default:
		log.Printf("[WARN] Ignoring interaction of type %d", ic.Type)
	}
}

// Shutdown stops accepting events and waits for in-flight handlers until ctx
// expires. In-flight work is never cancelled, only awaited.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.drainMu.Lock()
	d.draining = true
	d.drainMu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("dispatch: shutdown grace period elapsed: %w", ctx.Err())
	}
}

func (d *Dispatcher) lookupComponent(id string) (command.Handler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if h, ok := d.components[id]; ok {
		return h, true
	}
	prefix, _ := customid.Split(id)
	h, ok := d.prefixes[prefix]
	return h, ok
}

func (d *Dispatcher) lookupModal(id string) (command.Handler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if h, ok := d.modals[id]; ok {
		return h, true
	}
	prefix, _ := customid.Split(id)
	h, ok := d.modals[prefix]
	return h, ok
}

// invoke runs h on its own goroutine with panic isolation. Handler errors are
// reported to the interacting user and never crash the dispatch loop.
func (d *Dispatcher) invoke(h command.Handler, ctx *command.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[ERR] Panic in interaction handler: %v", rec)
				Error(ctx.Session, ctx.Event, d.errorMessage)
			}
		}()

		if err := h(ctx); err != nil {
			name := ctx.CustomID
			if ctx.Command != nil {
				name = ctx.Command.Name
			}
			log.Printf("[ERR] Handler %q failed: %v", name, err)
			Error(ctx.Session, ctx.Event, d.errorMessage)
		}
	}()
}

func (d *Dispatcher) notifyUnknown(s command.Session, ic *discordgo.InteractionCreate) {
	Error(s, ic, unknownComponentMessage)
}

func kindOf(t discordgo.ApplicationCommandType) command.Kind {
	switch t {
	case discordgo.MessageApplicationCommand:
		return command.KindMessageMenu
	case discordgo.UserApplicationCommand:
		return command.KindUserMenu
	default:
		return command.KindSlash
	}
}
