package loader

import (
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"reflect"

	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// ErrBadSignature is returned when a script symbol has the wrong type.
var ErrBadSignature = errors.New("bad script symbol")

// decodeScript interprets a Go source file. The file may use any package name
// and must declare
//
//	func Run(ctx context.Context, inv *cmd.Invocation) error
//
// It may also declare Aliases []string, Description string and Args []cmd.Arg.
// Scripts can import the standard library and the cmd package.
func decodeScript(path string, src []byte) (*cmd.Command, error) {
	f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	pkg := f.Name.Name

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load stdlib symbols: %w", err)
	}
	if err := i.Use(Symbols); err != nil {
		return nil, fmt.Errorf("load cmd symbols: %w", err)
	}
	if _, err := i.Eval(string(src)); err != nil {
		return nil, fmt.Errorf("evaluate script: %w", err)
	}

	v, err := i.Eval(pkg + ".Run")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cmd.ErrNoRun, err)
	}
	run, ok := v.Interface().(func(context.Context, *cmd.Invocation) error)
	if !ok {
		return nil, fmt.Errorf("%w: Run is %s, want func(context.Context, *cmd.Invocation) error", ErrBadSignature, v.Type())
	}

	c := &cmd.Command{Run: run}
	if err := lookup(i, pkg, "Aliases", &c.Aliases); err != nil {
		return nil, err
	}
	if err := lookup(i, pkg, "Description", &c.Description); err != nil {
		return nil, err
	}
	if err := lookup(i, pkg, "Args", &c.Args); err != nil {
		return nil, err
	}
	return c, nil
}

// lookup copies an optional package-level variable into dst. An undeclared
// symbol leaves dst untouched.
func lookup[T any](i *interp.Interpreter, pkg, name string, dst *T) error {
	v, err := i.Eval(pkg + "." + name)
	if err != nil || !v.IsValid() {
		return nil
	}
	val, ok := v.Interface().(T)
	if !ok {
		return fmt.Errorf("%w: %s is %s, want %s", ErrBadSignature, name, v.Type(), reflect.TypeOf(dst).Elem())
	}
	*dst = val
	return nil
}
