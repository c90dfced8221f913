// cmd/bot/main.go
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
	"github.com/keshon/cmdhandler/internal/telegram"
	"github.com/keshon/cmdhandler/pkg/jobmgr"

	"github.com/rs/zerolog/log"
)

// Runs every transport that has a token configured, all sharing one handler.
func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	if cfg.RequireDiscord() != nil && cfg.RequireTelegram() != nil {
		log.Fatal().Msg("Neither DISCORD_TOKEN nor TELEGRAM_TOKEN is set")
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

	jobs := jobmgr.NewManager(func(e jobmgr.Event) {
		if e.Err != nil {
			log.Error().Err(e.Err).Str("transport", e.Job).Msg("Transport stopped")
			return
		}
		log.Info().Str("transport", e.Job).Str("state", e.State.String()).Msg("Transport state changed")
	})

	if cfg.RequireDiscord() == nil {
		bot, err := discord.NewBot(cfg.DiscordToken, h)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Discord bot")
		}
		if err := jobs.Start(ctx, "discord", bot.Run); err != nil {
			log.Fatal().Err(err).Msg("Failed to start Discord bot")
		}
	}
	if cfg.RequireTelegram() == nil {
		bot, err := telegram.New(cfg.TelegramToken, h)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Telegram bot")
		}
		if err := jobs.Start(ctx, "telegram", bot.Run); err != nil {
			log.Fatal().Err(err).Msg("Failed to start Telegram bot")
		}
	}

	log.Info().Str("prefix", cfg.Prefix).Str("jobs", jobs.Status()).Msg("Bot started")
	if err := jobs.Wait(); err != nil {
		log.Error().Err(err).Msg("Bot exited with errors")
		return
	}
	log.Info().Msg("Bot exited cleanly")
}
