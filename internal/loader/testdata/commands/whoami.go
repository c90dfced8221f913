package whoami

import (
	"context"
	"fmt"

	"github.com/keshon/cmdhandler/pkg/cmd"
)

var Description = "Tells you who you are"

func Run(ctx context.Context, inv *cmd.Invocation) error {
	o := cmd.OriginOf(inv.Message)
	if o.AuthorName == "" {
		return inv.Reply(ctx, cmd.Text("I don't know you."))
	}
	return inv.Reply(ctx, cmd.Text(fmt.Sprintf("You are %s on %s.", o.AuthorName, o.Transport)))
}
