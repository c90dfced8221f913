// cmd/discord/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/keshon/cmdhandler/internal/app"
	"github.com/keshon/cmdhandler/internal/config"
	"github.com/keshon/cmdhandler/internal/discord"
	"github.com/keshon/cmdhandler/internal/logging"
	"github.com/keshon/cmdhandler/internal/storage"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	if err := cfg.RequireDiscord(); err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	h, err := app.NewHandler(cfg, store)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build command handler")
	}

	bot, err := discord.NewBot(cfg.DiscordToken, h)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Discord bot")
	}

	log.Info().Str("prefix", cfg.Prefix).Msg("Starting Discord bot")
	if err := bot.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Discord bot error")
		return
	}
	log.Info().Msg("Discord bot exited cleanly")
}
