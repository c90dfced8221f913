package cmd

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type invocationKey struct{}

// InvocationID returns the ID the guard assigned to the running invocation, or
// "" outside a guarded run.
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationKey{}).(string)
	return id
}

// Outcome is the result of one guarded run.
type Outcome struct {
	ID       string
	Command  string
	Err      error
	Panicked bool
	Duration time.Duration
}

// Failed reports whether the run returned an error or panicked.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// PanicError carries a value recovered from a panicking run.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Guard is the failure boundary around a command run. A failed run is logged
// once as a warning and, when ErrorMessage is set, answered with exactly that
// payload. Nothing escapes the guard: no retries, no timeouts, and every
// failure kind is treated the same.
type Guard struct {
	ErrorMessage Payload
	Logger       *zerolog.Logger
}

// NewGuard returns a guard replying with errorMessage on failure.
func NewGuard(errorMessage Payload, logger *zerolog.Logger) *Guard {
	return &Guard{ErrorMessage: errorMessage, Logger: logger}
}

func (g *Guard) logger() *zerolog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return &log.Logger
}

// Invoke runs c.Run and converts a returned error or a panic into the outcome.
func (g *Guard) Invoke(ctx context.Context, c *Command, inv *Invocation) (out Outcome) {
	out = Outcome{ID: uuid.NewString(), Command: c.Name}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out.Err = &PanicError{Value: r, Stack: debug.Stack()}
			out.Panicked = true
		}
		out.Duration = time.Since(start)
	}()

	if c.Run == nil {
		out.Err = ErrNoRun
		return out
	}
	out.Err = c.Run(context.WithValue(ctx, invocationKey{}, out.ID), inv)
	return out
}

// Settle applies the effects of a failed outcome: one warning and the optional
// fallback reply. Successful outcomes produce nothing.
func (g *Guard) Settle(ctx context.Context, inv *Invocation, out Outcome) {
	if !out.Failed() {
		return
	}

	l := g.logger()
	l.Warn().
		Err(out.Err).
		Str("command", out.Command).
		Str("invocation", out.ID).
		Bool("panic", out.Panicked).
		Dur("took", out.Duration).
		Msg("Command failed")

	if g.ErrorMessage.IsZero() || inv == nil || inv.Message == nil {
		return
	}
	if err := inv.Message.Reply(ctx, g.ErrorMessage); err != nil {
		l.Error().Err(err).Str("command", out.Command).Str("invocation", out.ID).Msg("Failed to send error message")
	}
}

// Execute is Invoke followed by Settle.
func (g *Guard) Execute(ctx context.Context, c *Command, inv *Invocation) Outcome {
	out := g.Invoke(ctx, c, inv)
	g.Settle(ctx, inv, out)
	return out
}

// Supervise installs g as the failure boundary of c. Later changes to c.Run are
// picked up, since the run is read at execution time.
func (g *Guard) Supervise(c *Command) {
	c.exec = func(ctx context.Context, inv *Invocation) Outcome {
		return g.Execute(ctx, c, inv)
	}
}
