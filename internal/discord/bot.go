package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/cmdhandler/internal/handler"
	"github.com/keshon/cmdhandler/pkg/cmd"
	"github.com/keshon/cmdhandler/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Dispatcher is the part of the command handler the bot needs.
type Dispatcher interface {
	RunCommand(ctx context.Context, msg cmd.Message, prefixOverride ...string) handler.Result
}

// Bot is a Discord bot that feeds every message to a Dispatcher
type Bot struct {
	dg         *discordgo.Session
	dispatcher Dispatcher
	limiter    *retrylimit.AdaptiveLimiter
	ctx        context.Context
}

// NewBot creates a bot. It does not connect until Run.
func NewBot(token string, d Dispatcher) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &Bot{
		dg:         dg,
		dispatcher: d,
		limiter:    retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5),
		ctx:        context.Background(),
	}, nil
}

// Run opens the gateway connection and blocks until ctx is done
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx
	b.configureIntents()
	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onMessageCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, closing Discord session")
	return nil
}

// configureIntents asks only for what prefix commands need
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("Discord bot is running")
}

// onMessageCreate is called when a message is created. discordgo runs each
// handler call on its own goroutine, so a slow command never blocks the others.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	if m.Author.ID == selfID {
		return
	}

	msg := NewMessage(m.Message, s, b.limiter)
	if p := mentionPrefix(m.Content, selfID); p != "" {
		b.dispatcher.RunCommand(b.ctx, msg, p)
		return
	}
	b.dispatcher.RunCommand(b.ctx, msg)
}

// mentionPrefix returns the mention the message starts with when it addresses
// the bot directly ("<@id> ping"), so the mention can act as the prefix.
func mentionPrefix(content, selfID string) string {
	if selfID == "" {
		return ""
	}
	for _, p := range []string{"<@" + selfID + ">", "<@!" + selfID + ">"} {
		if strings.HasPrefix(content, p) {
			return p
		}
	}
	return ""
}
