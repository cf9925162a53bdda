// Package config loads the example bot's settings from the environment,
// with an optional .env file for local runs.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the example bot needs to start.
type Config struct {
	DiscordToken  string        `env:"DISCORD_TOKEN,required"`
	GuildIDs      []string      `env:"GUILD_IDS" envSeparator:","`
	SyncCommands  bool          `env:"SYNC_COMMANDS" envDefault:"true"`
	CacheDir      string        `env:"COMMAND_CACHE_DIR" envDefault:"data/commands"`
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" envDefault:"10s"`
}

// Load reads a .env file when present, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
