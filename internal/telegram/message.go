package telegram

import (
	"context"
	"strconv"

	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

// Sender is the slice of *gotgbot.Bot used for replies.
type Sender interface {
	SendMessage(chatId int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error)
}

// Message adapts a Telegram message to cmd.Message.
type Message struct {
	msg    *gotgbot.Message
	sender Sender
}

// NewMessage wraps m.
func NewMessage(m *gotgbot.Message, sender Sender) *Message {
	return &Message{msg: m, sender: sender}
}

func (m *Message) Content() string {
	return m.msg.Text
}

// Origin implements cmd.OriginProvider.
func (m *Message) Origin() cmd.Origin {
	o := cmd.Origin{
		Transport: "telegram",
		ChannelID: strconv.FormatInt(m.msg.Chat.Id, 10),
	}
	if m.msg.From != nil {
		o.AuthorID = strconv.FormatInt(m.msg.From.Id, 10)
		o.AuthorName = m.msg.From.Username
	}
	return o
}

// Reply answers the message in its chat. Embeds are flattened to text.
func (m *Message) Reply(ctx context.Context, p cmd.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := m.sender.SendMessage(m.msg.Chat.Id, p.String(), &gotgbot.SendMessageOpts{
		ReplyParameters: &gotgbot.ReplyParameters{MessageId: m.msg.MessageId},
	})
	return err
}
