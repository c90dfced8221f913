package discord

import (
	"context"
	"errors"

	"github.com/keshon/cmdhandler/pkg/cmd"
	"github.com/keshon/cmdhandler/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
)

// Sender is the slice of *discordgo.Session used for replies.
type Sender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Message adapts a Discord message to cmd.Message.
type Message struct {
	msg     *discordgo.Message
	sender  Sender
	limiter *retrylimit.AdaptiveLimiter
}

// NewMessage wraps m. limiter may be nil.
func NewMessage(m *discordgo.Message, sender Sender, limiter *retrylimit.AdaptiveLimiter) *Message {
	return &Message{msg: m, sender: sender, limiter: limiter}
}

// Content returns the raw message text.
func (m *Message) Content() string {
	return m.msg.Content
}

// Raw exposes the underlying discordgo message to commands that need more.
func (m *Message) Raw() *discordgo.Message {
	return m.msg
}

// Origin implements cmd.OriginProvider.
func (m *Message) Origin() cmd.Origin {
	o := cmd.Origin{
		Transport: "discord",
		GuildID:   m.msg.GuildID,
		ChannelID: m.msg.ChannelID,
	}
	if m.msg.Author != nil {
		o.AuthorID = m.msg.Author.ID
		o.AuthorName = m.msg.Author.Username
	}
	return o
}

// Reply sends p to the message's channel as a reply to it.
func (m *Message) Reply(ctx context.Context, p cmd.Payload) error {
	send := &discordgo.MessageSend{
		Content:   p.Content,
		Reference: m.msg.Reference(),
	}
	if p.Embed != nil {
		e := embed.NewEmbed().
			SetTitle(p.Embed.Title).
			SetDescription(p.Embed.Description).
			SetColor(p.Embed.Color)
		send.Embeds = []*discordgo.MessageEmbed{e.MessageEmbed}
	}

	return retrylimit.WithRetry(ctx, func() error {
		_, err := m.sender.ChannelMessageSendComplex(m.msg.ChannelID, send, discordgo.WithContext(ctx))
		return withStatus(err)
	}, m.limiter)
}

// statusError exposes the HTTP status of a REST failure to retrylimit.
type statusError struct {
	err  error
	code int
}

func (e *statusError) Error() string   { return e.err.Error() }
func (e *statusError) Unwrap() error   { return e.err }
func (e *statusError) StatusCode() int { return e.code }

func withStatus(err error) error {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		return &statusError{err: err, code: rest.Response.StatusCode}
	}
	return err
}
