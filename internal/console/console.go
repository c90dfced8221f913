// Package console is a terminal transport: every input line is a message and
// replies are printed.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/user"
	"sync"

	"github.com/keshon/cmdhandler/internal/handler"
	"github.com/keshon/cmdhandler/pkg/cmd"
)

// Dispatcher is the part of the command handler the console needs.
type Dispatcher interface {
	RunCommand(ctx context.Context, msg cmd.Message, prefixOverride ...string) handler.Result
}

// Message is one input line.
type Message struct {
	text   string
	author string
	out    io.Writer
	mu     *sync.Mutex
}

// NewMessage returns a message whose replies are written to out.
func NewMessage(text, author string, out io.Writer) *Message {
	return &Message{text: text, author: author, out: out, mu: &sync.Mutex{}}
}

func (m *Message) Content() string { return m.text }

// Origin implements cmd.OriginProvider.
func (m *Message) Origin() cmd.Origin {
	return cmd.Origin{Transport: "console", ChannelID: "stdin", AuthorID: m.author, AuthorName: m.author}
}

// Reply prints the payload.
func (m *Message) Reply(_ context.Context, p cmd.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := fmt.Fprintln(m.out, p.String())
	return err
}

// Serve reads lines from in until EOF or ctx is done and dispatches each one.
// Lines are handled one after another so replies keep input order.
func Serve(ctx context.Context, in io.Reader, out io.Writer, d Dispatcher, prefixOverride ...string) error {
	author := "console"
	if u, err := user.Current(); err == nil && u.Username != "" {
		author = u.Username
	}
	mu := &sync.Mutex{}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := &Message{text: sc.Text(), author: author, out: out, mu: mu}
		d.RunCommand(ctx, msg, prefixOverride...)
	}
	return sc.Err()
}
