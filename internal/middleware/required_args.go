package middleware

import (
	"context"

	"github.com/keshon/cmdhandler/pkg/cmd"
)

// WithRequiredArgs answers with the command's usage instead of running it when
// fewer args were given than the command declares as required.
func WithRequiredArgs() cmd.Middleware {
	return func(c *cmd.Command, next cmd.RunFunc) cmd.RunFunc {
		required := c.RequiredArgs()
		if required == 0 {
			return next
		}
		return func(ctx context.Context, inv *cmd.Invocation) error {
			if len(inv.Args) >= required {
				return next(ctx, inv)
			}
			prefix := ""
			if inv.Handler != nil {
				prefix = inv.Handler.Prefix()
			}
			return inv.Reply(ctx, cmd.Text("Usage: "+c.Usage(prefix)))
		}
	}
}
