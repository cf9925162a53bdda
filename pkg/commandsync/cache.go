package commandsync

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bwmarrin/discordgo"
)

// Cache remembers the hash of every command pushed per scope so an unchanged
// definition is not re-registered on the next sync. Misses are harmless: the
// command is pushed again and the cache rebuilt.
type Cache struct {
	Dir string
}

// NewCache returns a cache rooted at dir.
func NewCache(dir string) *Cache { return &Cache{Dir: dir} }

func (c *Cache) path(guildID string) string {
	name := guildID
	if name == "" {
		name = "global"
	}
	return filepath.Join(c.Dir, name+".json")
}

// Load returns the cached name→hash map for a scope. A missing or unreadable
// file yields an empty map.
func (c *Cache) Load(guildID string) map[string]string {
	out := make(map[string]string)
	if c == nil {
		return out
	}
	if data, err := os.ReadFile(c.path(guildID)); err == nil {
		_ = json.Unmarshal(data, &out)
	}
	return out
}

// Save writes the name→hash map for a scope. Failures are ignored; the worst
// case is a redundant push next sync.
func (c *Cache) Save(guildID string, hashes map[string]string) {
	if c == nil {
		return
	}
	path := c.path(guildID)
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	if data, err := json.MarshalIndent(hashes, "", "  "); err == nil {
		_ = os.WriteFile(path, data, 0o644)
	}
}

// hashCommand returns a deterministic SHA-1 of a command's stable fields.
func hashCommand(c *discordgo.ApplicationCommand) string {
	stable := map[string]any{
		"name":        c.Name,
		"description": c.Description,
		"type":        c.Type,
		"options":     c.Options,
		"permissions": c.DefaultMemberPermissions,
		"dm":          c.DMPermission,
	}
	data, err := json.Marshal(stable)
	if err != nil {
		return ""
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
