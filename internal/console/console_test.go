package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keshon/cmdhandler/internal/builtin"
	"github.com/keshon/cmdhandler/internal/handler"
	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) *handler.Handler {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ping.yaml"), []byte("reply: pong\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "echo.yaml"), []byte("reply: '{{ join .Args \" \" }}'\n"), 0o644))

	l := zerolog.Nop()
	h, err := handler.New(handler.Options{
		Prefix:                "!",
		CommandsPath:          dir,
		InvalidCommandMessage: cmd.Text("unknown command"),
		Builtins:              builtin.Commands(),
		Logger:                &l,
	})
	require.NoError(t, err)
	return h
}

func TestServe(t *testing.T) {
	h := newHandler(t)
	in := strings.NewReader("!ping\nhello there\n!echo Hello World\n!nope\n")
	var out bytes.Buffer

	require.NoError(t, Serve(context.Background(), in, &out, h))

	assert.Equal(t, "pong\nHello World\nunknown command\n", out.String())
}

func TestServe_PrefixOverride(t *testing.T) {
	h := newHandler(t)
	var out bytes.Buffer

	require.NoError(t, Serve(context.Background(), strings.NewReader("/ping\n!ping\n"), &out, h, "/"))

	assert.Equal(t, "pong\n", out.String())
}

func TestServe_StopsWhenCancelled(t *testing.T) {
	h := newHandler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	err := Serve(ctx, strings.NewReader("!ping\n"), &out, h)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestMessage(t *testing.T) {
	var out bytes.Buffer
	m := NewMessage("!about", "ana", &out)

	assert.Equal(t, "!about", m.Content())
	assert.Equal(t, cmd.Origin{Transport: "console", ChannelID: "stdin", AuthorID: "ana", AuthorName: "ana"}, cmd.OriginOf(m))

	require.NoError(t, m.Reply(context.Background(), cmd.Payload{Embed: &cmd.Embed{Title: "About", Description: "A bot"}}))
	assert.Equal(t, cmd.Payload{Embed: &cmd.Embed{Title: "About", Description: "A bot"}}.String()+"\n", out.String())
}
