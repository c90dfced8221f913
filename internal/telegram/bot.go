// Package telegram feeds Telegram messages to the command handler using long polling.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/keshon/cmdhandler/internal/handler"
	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/rs/zerolog/log"
)

// Dispatcher is the part of the command handler the bot needs.
type Dispatcher interface {
	RunCommand(ctx context.Context, msg cmd.Message, prefixOverride ...string) handler.Result
}

// Bot wraps the Telegram bot functionality
type Bot struct {
	bot        *gotgbot.Bot
	updater    *ext.Updater
	dispatcher Dispatcher
	ctx        context.Context
}

// New creates a new Telegram bot
func New(token string, d Dispatcher) (*Bot, error) {
	// Long polling holds requests open, so the client timeout must exceed the poll timeout.
	bot, err := gotgbot.NewBot(token, &gotgbot.BotOpts{
		BotClient: &gotgbot.BaseBotClient{
			Client: http.Client{Timeout: 60 * time.Second},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating bot: %w", err)
	}
	return &Bot{bot: bot, dispatcher: d, ctx: context.Background()}, nil
}

// Run polls for updates and blocks until ctx is cancelled. The ext dispatcher
// handles updates concurrently.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(_ *gotgbot.Bot, _ *ext.Context, err error) ext.DispatcherAction {
			log.Error().Err(err).Msg("Telegram dispatcher error")
			return ext.DispatcherActionNoop
		},
	})
	dispatcher.AddHandler(handlers.NewMessage(nil, b.handleMessage))

	b.updater = ext.NewUpdater(dispatcher, nil)
	err := b.updater.StartPolling(b.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout:        30,
			AllowedUpdates: []string{"message"},
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: 60 * time.Second,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("starting polling: %w", err)
	}
	log.Info().Str("username", b.bot.Username).Msg("Telegram bot is running")

	<-ctx.Done()
	b.updater.Stop()
	log.Info().Msg("Telegram bot stopped")
	return nil
}

func (b *Bot) handleMessage(bot *gotgbot.Bot, ectx *ext.Context) error {
	m := ectx.EffectiveMessage
	if m == nil || m.Text == "" {
		return nil
	}
	if m.From != nil && m.From.IsBot {
		return nil
	}
	b.dispatcher.RunCommand(b.ctx, NewMessage(m, bot))
	return nil
}
