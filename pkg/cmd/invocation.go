// Package cmd provides a transport-agnostic command core: a command is something
// with a name, aliases, declared args and Run(ctx, invocation). How messages reach
// it (Discord, Telegram, a terminal) is defined by adapters that implement Message.
package cmd

import "context"

// Message is the minimal capability a transport must provide: the raw text of the
// incoming message and a way to answer it.
type Message interface {
	Content() string
	Reply(ctx context.Context, p Payload) error
}

// Origin identifies where a message came from. Fields a transport does not know
// are left empty.
type Origin struct {
	Transport  string
	GuildID    string
	ChannelID  string
	AuthorID   string
	AuthorName string
}

// OriginProvider is implemented by messages that can say who sent them and where.
type OriginProvider interface {
	Origin() Origin
}

// OriginOf returns the origin of m, or a zero Origin if m does not expose one.
func OriginOf(m Message) Origin {
	if op, ok := m.(OriginProvider); ok {
		return op.Origin()
	}
	return Origin{}
}

// View is the read-only handler facade passed into every run. Prefix is the
// prefix that matched this invocation, which may differ from the default when
// the caller supplied an override.
type View interface {
	Prefix() string
	Lookup(token string) (*Command, bool)
	Commands() []*Command
}

// Invocation carries everything a single run receives.
type Invocation struct {
	Message Message
	Args    []string
	Handler View
}

// Reply answers the message that triggered the invocation.
func (inv *Invocation) Reply(ctx context.Context, p Payload) error {
	return inv.Message.Reply(ctx, p)
}
