// Package handler dispatches chat messages to commands: it matches the prefix,
// tokenizes, resolves through the registry and runs the command behind its guard.
package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/keshon/cmdhandler/internal/loader"
	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoPrefix       = errors.New("prefix is required")
	ErrNoCommandsPath = errors.New("commands path is required")
)

// Options configures a Handler.
type Options struct {
	Prefix string
	// ErrorMessage is sent when a command fails. Zero means no reply.
	ErrorMessage cmd.Payload
	// InvalidCommandMessage is sent when a prefixed message names no command.
	InvalidCommandMessage cmd.Payload
	CommandsPath          string

	Builtins    []*cmd.Command
	Middlewares []cmd.Middleware
	// Strict makes New fail when any command file is rejected.
	Strict bool
	Logger *zerolog.Logger
}

// Status says what RunCommand did with a message.
type Status int

const (
	// Ignored: no prefix, or nothing after it.
	Ignored Status = iota
	// Unknown: prefixed, but no command by that name or alias.
	Unknown
	// Executed: the command ran and succeeded.
	Executed
	// Failed: the command ran and its guard caught a failure.
	Failed
)

func (s Status) String() string {
	switch s {
	case Ignored:
		return "ignored"
	case Unknown:
		return "unknown"
	case Executed:
		return "executed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result describes one RunCommand call.
type Result struct {
	Status  Status
	Command string
	Args    []string
	Outcome cmd.Outcome
}

// Handler owns the registry built at construction. It is safe for concurrent use.
type Handler struct {
	opts     Options
	registry *cmd.Registry
	report   loader.Report
	log      *zerolog.Logger
}

// New loads the commands directory and returns a ready handler.
func New(opts Options) (*Handler, error) {
	if opts.Prefix == "" {
		return nil, ErrNoPrefix
	}
	if opts.CommandsPath == "" {
		return nil, ErrNoCommandsPath
	}
	l := opts.Logger
	if l == nil {
		l = &log.Logger
	}

	registry, report := loader.Load(opts.CommandsPath, loader.Options{
		Guard:       cmd.NewGuard(opts.ErrorMessage, l),
		Middlewares: opts.Middlewares,
		Builtins:    opts.Builtins,
		Logger:      l,
	})
	if opts.Strict {
		if err := report.Err(); err != nil {
			return nil, fmt.Errorf("load commands: %w", err)
		}
	}

	l.Info().
		Str("dir", opts.CommandsPath).
		Int("commands", registry.Len()).
		Int("rejected", len(report.Rejected)).
		Msg("Command handler ready")

	return &Handler{
		opts:     opts,
		registry: registry,
		report:   report,
		log:      l,
	}, nil
}

// Prefix returns the default prefix.
func (h *Handler) Prefix() string {
	return h.opts.Prefix
}

// Registry returns the frozen command registry.
func (h *Handler) Registry() *cmd.Registry {
	return h.registry
}

// Report returns what the loader did at construction.
func (h *Handler) Report() loader.Report {
	return h.report
}

// GetCommand resolves a name or alias.
func (h *Handler) GetCommand(name string) (*cmd.Command, bool) {
	return h.registry.Resolve(name)
}

// RunCommand dispatches msg. An optional prefix override replaces the default
// prefix for this call only. Messages without the prefix are ignored without any
// side effect. Command failures are contained by the guard and only reported in
// the result.
func (h *Handler) RunCommand(ctx context.Context, msg cmd.Message, prefixOverride ...string) Result {
	prefix := h.opts.Prefix
	if len(prefixOverride) > 0 && prefixOverride[0] != "" {
		prefix = prefixOverride[0]
	}

	name, args, ok := Parse(msg.Content(), prefix)
	if !ok {
		return Result{Status: Ignored}
	}

	c, ok := h.registry.Resolve(name)
	if !ok {
		h.log.Debug().Str("command", name).Msg("Unknown command")
		if !h.opts.InvalidCommandMessage.IsZero() {
			if err := msg.Reply(ctx, h.opts.InvalidCommandMessage); err != nil {
				h.log.Error().Err(err).Str("command", name).Msg("Failed to send invalid command message")
			}
		}
		return Result{Status: Unknown, Command: name, Args: args}
	}

	out := c.Execute(ctx, &cmd.Invocation{
		Message: msg,
		Args:    args,
		Handler: view{registry: h.registry, prefix: prefix},
	})

	res := Result{Status: Executed, Command: c.Name, Args: args, Outcome: out}
	if out.Failed() {
		res.Status = Failed
	}
	return res
}

// view is the read-only facade handed to runs.
type view struct {
	registry *cmd.Registry
	prefix   string
}

func (v view) Prefix() string { return v.prefix }

func (v view) Lookup(token string) (*cmd.Command, bool) { return v.registry.Resolve(token) }

func (v view) Commands() []*cmd.Command { return v.registry.Commands() }
