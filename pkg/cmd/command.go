package cmd

import (
	"context"
	"errors"
	"strings"
)

// ErrNoRun is returned for a command that declares no run behavior.
var ErrNoRun = errors.New("command has no run behavior")

// RunFunc is a command's behavior. Anything other than the returned error is
// ignored by the core.
type RunFunc func(ctx context.Context, inv *Invocation) error

// Arg is a declared positional argument. It is metadata only: the dispatcher
// never checks it.
type Arg struct {
	Name     string
	Required bool
}

// Command describes one invocable command.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Args        []Arg
	Run         RunFunc

	// Source is the file the command was loaded from, empty for built-ins.
	Source string

	exec func(ctx context.Context, inv *Invocation) Outcome
}

// Execute runs the command through its supervised run. Commands that were never
// supervised run under a guard with no fallback message.
func (c *Command) Execute(ctx context.Context, inv *Invocation) Outcome {
	if c.exec != nil {
		return c.exec(ctx, inv)
	}
	return (&Guard{}).Execute(ctx, c, inv)
}

// Supervised reports whether a guard has been installed.
func (c *Command) Supervised() bool {
	return c.exec != nil
}

// Usage renders the command with its declared args, e.g. "!roll <sides> [count]".
func (c *Command) Usage(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(c.Name)
	for _, a := range c.Args {
		if a.Required {
			b.WriteString(" <" + a.Name + ">")
		} else {
			b.WriteString(" [" + a.Name + "]")
		}
	}
	return b.String()
}

// RequiredArgs counts args declared as required.
func (c *Command) RequiredArgs() int {
	n := 0
	for _, a := range c.Args {
		if a.Required {
			n++
		}
	}
	return n
}
