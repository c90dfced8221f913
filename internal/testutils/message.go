// Package testutils holds fakes shared by package tests.
package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/keshon/cmdhandler/pkg/cmd"
)

// ErrReplyFailed is returned by a FakeMessage with FailReplies set.
var ErrReplyFailed = errors.New("reply failed")

// FakeMessage is a cmd.Message that records replies.
type FakeMessage struct {
	Text        string
	FailReplies bool
	From        cmd.Origin

	mu      sync.Mutex
	replies []cmd.Payload
}

// NewMessage returns a fake message with the given text.
func NewMessage(text string) *FakeMessage {
	return &FakeMessage{Text: text, From: cmd.Origin{Transport: "test", ChannelID: "chan", AuthorID: "u1", AuthorName: "tester"}}
}

func (m *FakeMessage) Content() string { return m.Text }

func (m *FakeMessage) Origin() cmd.Origin { return m.From }

func (m *FakeMessage) Reply(_ context.Context, p cmd.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, p)
	if m.FailReplies {
		return ErrReplyFailed
	}
	return nil
}

// Replies returns a copy of what was sent.
func (m *FakeMessage) Replies() []cmd.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]cmd.Payload(nil), m.replies...)
}

// View is a static cmd.View.
type View struct {
	P    string
	Reg  *cmd.Registry
	List []*cmd.Command
}

func (v View) Prefix() string { return v.P }

func (v View) Lookup(token string) (*cmd.Command, bool) {
	if v.Reg == nil {
		return nil, false
	}
	return v.Reg.Resolve(token)
}

func (v View) Commands() []*cmd.Command {
	if v.Reg != nil {
		return v.Reg.Commands()
	}
	return v.List
}
