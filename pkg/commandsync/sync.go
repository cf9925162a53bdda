// Package commandsync pushes registered command definitions to Discord:
// obsolete remote commands are deleted, changed ones created or updated, and
// unchanged ones skipped via a local hash cache. API calls are paced so a
// large sync stays under the registration rate limit.
package commandsync

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"slashkit/pkg/command"
	"slashkit/pkg/ratelimit"
)

// API is the slice of the bot client the syncer calls. *discordgo.Session
// satisfies it.
type API interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// guildParallelism bounds how many guild scopes sync at once in SyncAll.
const guildParallelism = 3

// commandKey identifies a command within one scope. A slash command and a
// context-menu command may share a name, so the name alone is not enough.
type commandKey struct {
	name string
	kind discordgo.ApplicationCommandType
}

func (k commandKey) String() string { return fmt.Sprintf("%s/%d", k.name, k.kind) }

// keyFor normalizes the zero command type to chat-input, which is what the
// platform defaults an unset type to.
func keyFor(name string, t discordgo.ApplicationCommandType) commandKey {
	if t == 0 {
		t = discordgo.ChatApplicationCommand
	}
	return commandKey{name: name, kind: t}
}

// Syncer reconciles a registry's definitions with Discord.
type Syncer struct {
	api      API
	appID    string
	registry *command.Registry
	cache    *Cache
	pacer    *ratelimit.Pacer
}

// Option adjusts a Syncer.
type Option func(*Syncer)

// WithCache enables hash caching so unchanged commands are skipped.
func WithCache(c *Cache) Option { return func(s *Syncer) { s.cache = c } }

// WithPacer overrides the default API pacing.
func WithPacer(p *ratelimit.Pacer) Option { return func(s *Syncer) { s.pacer = p } }

// New returns a Syncer for the application appID backed by reg.
func New(api API, appID string, reg *command.Registry, opts ...Option) *Syncer {
	s := &Syncer{
		api:      api,
		appID:    appID,
		registry: reg,
		pacer:    ratelimit.NewPacer(5, 1, 20),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncScope reconciles one scope: guildID "" for global commands, otherwise
// that guild's commands. Per-command failures are collected and returned
// together; the rest of the scope still syncs.
func (s *Syncer) SyncScope(ctx context.Context, guildID string) error {
	var defs []*command.Definition
	for _, def := range s.registry.All() {
		if def.GuildID == guildID {
			defs = append(defs, def)
		}
	}

	remote, err := s.api.ApplicationCommands(s.appID, guildID)
	if err != nil {
		return fmt.Errorf("commandsync: list remote commands for %s: %w", scopeLabel(guildID), err)
	}

	wanted := make(map[commandKey]*discordgo.ApplicationCommand, len(defs))
	hashes := make(map[commandKey]string, len(defs))
	for _, def := range defs {
		ac := def.ApplicationCommand()
		key := keyFor(ac.Name, ac.Type)
		wanted[key] = ac
		hashes[key] = hashCommand(ac)
	}

	cached := s.cache.Load(guildID)
	var errs *multierror.Error

	for _, rc := range remote {
		key := keyFor(rc.Name, rc.Type)
		if _, keep := wanted[key]; keep {
			continue
		}
		log.Printf("[INFO] [%s] Deleting obsolete command: %s", scopeLabel(guildID), rc.Name)
		if err := s.call(ctx, func() error {
			return s.api.ApplicationCommandDelete(s.appID, guildID, rc.ID)
		}); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("delete %s: %w", rc.Name, err))
			continue
		}
		delete(cached, key.String())
	}

	for key, ac := range wanted {
		if cached[key.String()] == hashes[key] {
			continue
		}
		if err := s.call(ctx, func() error {
			_, err := s.api.ApplicationCommandCreate(s.appID, guildID, ac)
			return err
		}); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("register %s: %w", key.name, err))
			continue
		}
		log.Printf("[DONE] [%s] Registered: %s", scopeLabel(guildID), key.name)
		cached[key.String()] = hashes[key]
	}

	s.cache.Save(guildID, cached)
	return errs.ErrorOrNil()
}

// SyncAll reconciles the global scope plus each listed guild, a few scopes at
// a time. The first hard failure cancels the remaining scopes.
func (s *Syncer) SyncAll(ctx context.Context, guildIDs ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(guildParallelism)

	scopes := append([]string{""}, guildIDs...)
	for _, scope := range scopes {
		scope := scope
		g.Go(func() error {
			return s.SyncScope(ctx, scope)
		})
	}
	return g.Wait()
}

// call runs one API operation under the pacer and reports its outcome back.
func (s *Syncer) call(ctx context.Context, fn func() error) error {
	if err := s.pacer.Wait(ctx); err != nil {
		return err
	}
	err := fn()
	s.pacer.Observe(err)
	return err
}

func scopeLabel(guildID string) string {
	if guildID == "" {
		return "global"
	}
	return guildID
}
