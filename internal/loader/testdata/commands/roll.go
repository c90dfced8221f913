package roll

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/keshon/cmdhandler/pkg/cmd"
)

var Aliases = []string{"dice", "r"}

var Description = "Rolls a die"

var Args = []cmd.Arg{{Name: "sides"}}

func Run(ctx context.Context, inv *cmd.Invocation) error {
	sides := 6
	if len(inv.Args) > 0 {
		n, err := strconv.Atoi(inv.Args[0])
		if err != nil || n < 2 {
			return fmt.Errorf("invalid number of sides %q", inv.Args[0])
		}
		sides = n
	}
	return inv.Reply(ctx, cmd.Text(fmt.Sprintf("You rolled %d (d%d)", rand.Intn(sides)+1, sides)))
}
