package loader

import (
	"reflect"

	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/traefik/yaegi/interp"
)

// Symbols exposes the cmd package to command scripts.
var Symbols = interp.Exports{
	"github.com/keshon/cmdhandler/pkg/cmd/cmd": {
		"Arg":            reflect.ValueOf((*cmd.Arg)(nil)),
		"Command":        reflect.ValueOf((*cmd.Command)(nil)),
		"Embed":          reflect.ValueOf((*cmd.Embed)(nil)),
		"Invocation":     reflect.ValueOf((*cmd.Invocation)(nil)),
		"Message":        reflect.ValueOf((*cmd.Message)(nil)),
		"Origin":         reflect.ValueOf((*cmd.Origin)(nil)),
		"OriginProvider": reflect.ValueOf((*cmd.OriginProvider)(nil)),
		"Payload":        reflect.ValueOf((*cmd.Payload)(nil)),
		"RunFunc":        reflect.ValueOf((*cmd.RunFunc)(nil)),
		"View":           reflect.ValueOf((*cmd.View)(nil)),

		"ErrNoRun": reflect.ValueOf(&cmd.ErrNoRun).Elem(),
		"OriginOf": reflect.ValueOf(cmd.OriginOf),
		"Text":     reflect.ValueOf(cmd.Text),
	},
}
