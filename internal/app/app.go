// Package app wires configuration, storage and middleware into a command handler.
package app

import (
	"github.com/keshon/cmdhandler/internal/builtin"
	"github.com/keshon/cmdhandler/internal/config"
	"github.com/keshon/cmdhandler/internal/handler"
	"github.com/keshon/cmdhandler/internal/middleware"
	"github.com/keshon/cmdhandler/internal/storage"
	"github.com/keshon/cmdhandler/pkg/cmd"
)

// HandlerOptions translates cfg into handler options. store may be nil, in
// which case invocations are not recorded.
func HandlerOptions(cfg *config.Config, store *storage.Storage) handler.Options {
	var mws []cmd.Middleware
	if store != nil {
		mws = append(mws, middleware.WithCommandLogger(store))
	}
	if cfg.RequireArgs {
		mws = append(mws, middleware.WithRequiredArgs())
	}

	return handler.Options{
		Prefix:                cfg.Prefix,
		ErrorMessage:          cfg.ErrorPayload(),
		InvalidCommandMessage: cfg.InvalidCommandPayload(),
		CommandsPath:          cfg.CommandsPath,
		Builtins:              builtin.Commands(),
		Middlewares:           mws,
		Strict:                cfg.StrictLoad,
	}
}

// NewHandler builds the handler described by cfg.
func NewHandler(cfg *config.Config, store *storage.Storage) (*handler.Handler, error) {
	return handler.New(HandlerOptions(cfg, store))
}
