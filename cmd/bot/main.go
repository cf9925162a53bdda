package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"slashkit/internal/commands"
	"slashkit/internal/config"
	"slashkit/pkg/command"
	"slashkit/pkg/commandsync"
	"slashkit/pkg/dispatch"
)

func main() {
	log.Println("[INFO] Starting example bot...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[ERR] Config:", err)
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatal("[ERR] Session:", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	reg := command.NewRegistry()
	d := dispatch.New(reg)
	if err := commands.Setup(reg, d); err != nil {
		log.Fatal("[ERR] Commands:", err)
	}
	session.AddHandler(d.Handler())

	if err := session.Open(); err != nil {
		log.Fatal("[ERR] Gateway:", err)
	}
	defer session.Close()
	log.Printf("[INFO] Connected as %s", session.State.User.Username)

	if cfg.SyncCommands {
		syncer := commandsync.New(session, session.State.User.ID, reg,
			commandsync.WithCache(commandsync.NewCache(cfg.CacheDir)))
		if err := syncer.SyncAll(ctx, cfg.GuildIDs...); err != nil {
			log.Println("[ERR] Command sync:", err)
		}
	}

	<-ctx.Done()
	log.Println("[INFO] Shutting down...")

	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := d.Shutdown(drainCtx); err != nil {
		log.Println("[WARN] Some handlers did not finish:", err)
	}

	log.Println("[INFO] Bot exited cleanly")
}
