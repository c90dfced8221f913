// Package loader turns a directory of command files into a frozen command
// registry. It runs once, synchronously, when a handler is built.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/keshon/cmdhandler/pkg/cmd"
	"github.com/keshon/cmdhandler/pkg/util"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrUnsupported is returned for a file whose extension has no decoder.
var ErrUnsupported = errors.New("unsupported command file")

// Options controls how discovered commands are prepared.
type Options struct {
	// Guard becomes the failure boundary of every command. A zero guard is used when nil.
	Guard *cmd.Guard
	// Middlewares wrap every command run, first is outermost.
	Middlewares []cmd.Middleware
	// Builtins are registered before the directory scan, so files may override them.
	Builtins []*cmd.Command
	Logger   *zerolog.Logger
}

// Rejection records a file that could not become a command.
type Rejection struct {
	Path string
	Err  error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("%s: %v", r.Path, r.Err)
}

func (r Rejection) Unwrap() error {
	return r.Err
}

// Report summarizes one load.
type Report struct {
	Loaded   []string
	Skipped  []string
	Rejected []Rejection
}

// Err joins all rejections, or returns nil when every eligible file loaded.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Rejected))
	for _, rej := range r.Rejected {
		errs = append(errs, rej)
	}
	return errors.Join(errs...)
}

// Load scans dir once and builds the registry. A missing directory yields a
// registry holding only the built-ins. Entries are processed in listing order;
// when two files share a canonical name or an alias, the one processed last wins.
func Load(dir string, opts Options) (*cmd.Registry, Report) {
	l := opts.Logger
	if l == nil {
		l = &log.Logger
	}
	guard := opts.Guard
	if guard == nil {
		guard = &cmd.Guard{Logger: l}
	}

	b := cmd.NewBuilder()
	var rep Report

	for _, c := range opts.Builtins {
		prepared := *c
		register(b, &prepared, guard, opts.Middlewares)
		l.Debug().Str("command", prepared.Name).Msg("Registered built-in command")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Debug().Str("dir", dir).Msg("Commands directory does not exist")
			return b.Build(), rep
		}
		l.Error().Err(err).Str("dir", dir).Msg("Failed to read commands directory")
		rep.Rejected = append(rep.Rejected, Rejection{Path: dir, Err: err})
		return b.Build(), rep
	}

	var files []*candidate
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			rep.Skipped = append(rep.Skipped, path)
			continue
		}
		name, ok := CanonicalName(e.Name())
		if !ok {
			rep.Skipped = append(rep.Skipped, path)
			continue
		}
		files = append(files, &candidate{path: path, name: name})
	}

	// Decoding is independent per file; registration below keeps listing order.
	_ = util.Parallel(context.Background(), files, decodeWorkers, func(_ context.Context, f *candidate) error {
		f.command, f.err = decodeFile(f.path)
		return nil
	})

	for _, f := range files {
		if f.err != nil {
			l.Error().Err(f.err).Str("file", f.path).Msg("Rejected command file")
			rep.Rejected = append(rep.Rejected, Rejection{Path: f.path, Err: f.err})
			continue
		}
		c := f.command
		c.Name = f.name
		c.Source = f.path

		register(b, c, guard, opts.Middlewares)
		rep.Loaded = append(rep.Loaded, f.name)
		l.Debug().Str("command", f.name).Strs("aliases", c.Aliases).Str("file", f.path).Msg("Loaded command")
	}

	return b.Build(), rep
}

const decodeWorkers = 4

type candidate struct {
	path    string
	name    string
	command *cmd.Command
	err     error
}

func register(b *cmd.Builder, c *cmd.Command, guard *cmd.Guard, mws []cmd.Middleware) {
	cmd.Apply(c, mws...)
	guard.Supervise(c)
	b.Insert(c)
	for _, alias := range c.Aliases {
		b.InsertAlias(alias, c.Name)
	}
}

func decodeFile(path string) (*cmd.Command, error) {
	dec, ok := decoders[filepath.Ext(path)]
	if !ok {
		return nil, ErrUnsupported
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read command file: %w", err)
	}
	c, err := dec(path, src)
	if err != nil {
		return nil, err
	}
	if c.Run == nil {
		return nil, cmd.ErrNoRun
	}
	return c, nil
}
