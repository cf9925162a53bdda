package command

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultRegistry is the process-wide registry used by the package-level
// Register/Resolve/Unregister helpers.
var DefaultRegistry = NewRegistry()

type registryKey struct {
	name    string
	guildID string
	kind    Kind
}

// Registry stores command definitions keyed by (name, guild, kind).
// Registration happens during startup; once the bot client begins dispatching,
// lookups run concurrently under the read lock while the rare mutation
// serializes against other mutations only.
type Registry struct {
	mu   sync.RWMutex
	defs map[registryKey]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[registryKey]*Definition)}
}

// Register stores def. It fails with a DuplicateError when a definition with
// the same (name, guild, kind) already exists, leaving the earlier one intact.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return fmt.Errorf("command: nil definition")
	}
	if def.Name == "" {
		return fmt.Errorf("command: definition has no name")
	}
	if def.Handler == nil {
		return fmt.Errorf("command: %s %q has no handler", def.Kind, def.Name)
	}

	key := registryKey{name: def.Name, guildID: def.GuildID, kind: def.Kind}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[key]; exists {
		return &DuplicateError{Name: def.Name, GuildID: def.GuildID, Kind: def.Kind}
	}
	r.defs[key] = def
	return nil
}

// Resolve returns the definition for (name, kind) visible from guildID.
// A guild-scoped definition takes precedence over a global one of the same
// name; a NotFoundError is returned when neither exists.
func (r *Registry) Resolve(name, guildID string, kind Kind) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if guildID != "" {
		if def, ok := r.defs[registryKey{name: name, guildID: guildID, kind: kind}]; ok {
			return def, nil
		}
	}
	if def, ok := r.defs[registryKey{name: name, kind: kind}]; ok {
		return def, nil
	}
	return nil, &NotFoundError{Name: name, GuildID: guildID, Kind: kind}
}

// Unregister removes the definition for (name, guild, kind). Removing an
// absent definition is a no-op.
func (r *Registry) Unregister(name, guildID string, kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.defs, registryKey{name: name, guildID: guildID, kind: kind})
}

// All returns every registered definition, sorted by name then guild.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Definition, 0, len(r.defs))
	for _, def := range r.defs {
		list = append(list, def)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].GuildID < list[j].GuildID
	})
	return list
}

// ForGuild returns the definitions that should be visible in guildID: every
// guild-scoped definition for it plus each global one not shadowed by a
// guild-scoped namesake.
func (r *Registry) ForGuild(guildID string) []*Definition {
	all := r.All()
	out := make([]*Definition, 0, len(all))
	shadowed := make(map[registryKey]bool)
	for _, def := range all {
		if def.GuildID == guildID && guildID != "" {
			shadowed[registryKey{name: def.Name, kind: def.Kind}] = true
		}
	}
	for _, def := range all {
		switch def.GuildID {
		case guildID:
			out = append(out, def)
		case "":
			if !shadowed[registryKey{name: def.Name, kind: def.Kind}] {
				out = append(out, def)
			}
		}
	}
	return out
}

// Register adds def to the DefaultRegistry.
func Register(def *Definition) error { return DefaultRegistry.Register(def) }

// Resolve looks up (name, kind) in the DefaultRegistry as seen from guildID.
func Resolve(name, guildID string, kind Kind) (*Definition, error) {
	return DefaultRegistry.Resolve(name, guildID, kind)
}

// Unregister removes a definition from the DefaultRegistry.
func Unregister(name, guildID string, kind Kind) { DefaultRegistry.Unregister(name, guildID, kind) }
