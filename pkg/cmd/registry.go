package cmd

import "sort"

// Builder collects commands and aliases before a Registry is frozen. Both insert
// methods overwrite silently, so the last write for a key wins.
type Builder struct {
	commands map[string]*Command
	aliases  map[string]string
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
}

// Insert stores c under its canonical name.
func (b *Builder) Insert(c *Command) {
	b.commands[c.Name] = c
}

// InsertAlias points alias at the canonical name.
func (b *Builder) InsertAlias(alias, name string) {
	b.aliases[alias] = name
}

// Build freezes the collected tables. Aliases whose target was never inserted are
// dropped. The builder may keep being used; later inserts do not affect the result.
func (b *Builder) Build() *Registry {
	r := &Registry{
		commands: make(map[string]*Command, len(b.commands)),
		aliases:  make(map[string]string, len(b.aliases)),
	}
	for name, c := range b.commands {
		r.commands[name] = c
	}
	for alias, name := range b.aliases {
		if _, ok := b.commands[name]; ok {
			r.aliases[alias] = name
		}
	}
	return r
}

// Registry maps canonical names and aliases to commands. It is never mutated
// after Build, so concurrent reads need no locking.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
}

// Resolve looks token up as a canonical name first and as an alias second.
func (r *Registry) Resolve(token string) (*Command, bool) {
	if c, ok := r.commands[token]; ok {
		return c, true
	}
	if name, ok := r.aliases[token]; ok {
		c, ok := r.commands[name]
		return c, ok
	}
	return nil, false
}

// Get returns the command with the given canonical name.
func (r *Registry) Get(name string) (*Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Commands returns all registered commands, sorted by name.
func (r *Registry) Commands() []*Command {
	list := make([]*Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for a, n := range r.aliases {
		out[a] = n
	}
	return out
}

// Len returns the number of canonical commands.
func (r *Registry) Len() int {
	return len(r.commands)
}
