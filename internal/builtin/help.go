// Package builtin holds commands compiled into the binaries. Command files
// with the same name replace them.
package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/cmdhandler/pkg/cmd"
)

// Commands returns the built-in commands.
func Commands() []*cmd.Command {
	return []*cmd.Command{Help()}
}

// Help lists every command, or details one when given a name.
func Help() *cmd.Command {
	return &cmd.Command{
		Name:        "help",
		Aliases:     []string{"commands", "h"},
		Description: "Lists commands or shows how to use one",
		Args:        []cmd.Arg{{Name: "command"}},
		Run:         runHelp,
	}
}

func runHelp(ctx context.Context, inv *cmd.Invocation) error {
	prefix := inv.Handler.Prefix()

	if len(inv.Args) > 0 {
		name := strings.ToLower(inv.Args[0])
		c, ok := inv.Handler.Lookup(name)
		if !ok {
			return inv.Reply(ctx, cmd.Text(fmt.Sprintf("No command named %q.", name)))
		}
		var b strings.Builder
		b.WriteString(c.Usage(prefix))
		if c.Description != "" {
			b.WriteString("\n" + c.Description)
		}
		if len(c.Aliases) > 0 {
			b.WriteString("\nAliases: " + strings.Join(c.Aliases, ", "))
		}
		return inv.Reply(ctx, cmd.Payload{Embed: &cmd.Embed{Title: c.Name, Description: b.String()}})
	}

	var b strings.Builder
	for _, c := range inv.Handler.Commands() {
		fmt.Fprintf(&b, "`%s`", c.Usage(prefix))
		if c.Description != "" {
			b.WriteString(" - " + c.Description)
		}
		b.WriteString("\n")
	}
	return inv.Reply(ctx, cmd.Payload{Embed: &cmd.Embed{
		Title:       "Commands",
		Description: strings.TrimRight(b.String(), "\n"),
	}})
}
