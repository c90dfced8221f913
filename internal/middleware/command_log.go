package middleware

import (
	"context"

	"github.com/keshon/cmdhandler/internal/storage"
	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/rs/zerolog/log"
)

// WithCommandLogger records every executed invocation in store. Panics are
// recorded as failures and passed on to the guard.
func WithCommandLogger(store *storage.Storage) cmd.Middleware {
	return func(c *cmd.Command, next cmd.RunFunc) cmd.RunFunc {
		return func(ctx context.Context, inv *cmd.Invocation) (err error) {
			panicked := true
			defer func() {
				o := cmd.OriginOf(inv.Message)
				rec := storage.CommandHistoryRecord{
					Transport:  o.Transport,
					GuildID:    o.GuildID,
					ChannelID:  o.ChannelID,
					UserID:     o.AuthorID,
					Username:   o.AuthorName,
					Command:    c.Name,
					Args:       inv.Args,
					Failed:     err != nil || panicked,
					Invocation: cmd.InvocationID(ctx),
				}
				if e := store.AppendCommandToHistory(rec); e != nil {
					log.Warn().Err(e).Str("command", c.Name).Msg("Failed to log command")
				}
			}()

			err = next(ctx, inv)
			panicked = false
			return err
		}
	}
}
