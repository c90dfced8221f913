package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/keshon/cmdhandler/internal/handler"
	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	chatID int64
	text   string
	opts   *gotgbot.SendMessageOpts
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) SendMessage(chatId int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error) {
	f.sent = append(f.sent, sent{chatID: chatId, text: text, opts: opts})
	return &gotgbot.Message{}, f.err
}

type fakeDispatcher struct {
	texts []string
}

func (f *fakeDispatcher) RunCommand(_ context.Context, msg cmd.Message, _ ...string) handler.Result {
	f.texts = append(f.texts, msg.Content())
	return handler.Result{}
}

func telegramMessage(text string) *gotgbot.Message {
	return &gotgbot.Message{
		MessageId: 7,
		Text:      text,
		Chat:      gotgbot.Chat{Id: -100},
		From:      &gotgbot.User{Id: 5, Username: "ana"},
	}
}

func TestMessage_Origin(t *testing.T) {
	m := NewMessage(telegramMessage("!ping"), &fakeSender{})

	assert.Equal(t, "!ping", m.Content())
	assert.Equal(t, cmd.Origin{Transport: "telegram", ChannelID: "-100", AuthorID: "5", AuthorName: "ana"}, cmd.OriginOf(m))
}

func TestMessage_Reply(t *testing.T) {
	s := &fakeSender{}
	m := NewMessage(telegramMessage("!about"), s)

	require.NoError(t, m.Reply(context.Background(), cmd.Payload{Content: "hi", Embed: &cmd.Embed{Title: "About"}}))

	require.Len(t, s.sent, 1)
	assert.Equal(t, int64(-100), s.sent[0].chatID)
	assert.Equal(t, "hi\nAbout", s.sent[0].text)
	require.NotNil(t, s.sent[0].opts.ReplyParameters)
	assert.Equal(t, int64(7), s.sent[0].opts.ReplyParameters.MessageId)
}

func TestMessage_ReplyErrors(t *testing.T) {
	s := &fakeSender{err: errors.New("forbidden")}
	m := NewMessage(telegramMessage("!ping"), s)
	assert.EqualError(t, m.Reply(context.Background(), cmd.Text("pong")), "forbidden")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Reply(ctx, cmd.Text("pong")), context.Canceled)
	assert.Len(t, s.sent, 1)
}

func TestHandleMessage(t *testing.T) {
	d := &fakeDispatcher{}
	b := &Bot{dispatcher: d, ctx: context.Background()}

	botMsg := telegramMessage("!ping")
	botMsg.From.IsBot = true

	for _, m := range []*gotgbot.Message{telegramMessage("!ping"), telegramMessage(""), botMsg, nil} {
		require.NoError(t, b.handleMessage(nil, &ext.Context{EffectiveMessage: m}))
	}

	assert.Equal(t, []string{"!ping"}, d.texts)
}
