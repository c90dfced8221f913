package cmd_test

import (
	"testing"

	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommand(name string, aliases ...string) *cmd.Command {
	return &cmd.Command{Name: name, Aliases: aliases}
}

func build(cmds ...*cmd.Command) *cmd.Registry {
	b := cmd.NewBuilder()
	for _, c := range cmds {
		b.Insert(c)
		for _, a := range c.Aliases {
			b.InsertAlias(a, c.Name)
		}
	}
	return b.Build()
}

func TestRegistry_ResolveByNameAndAlias(t *testing.T) {
	ping := newCommand("ping", "p", "pong")
	roll := newCommand("roll", "dice")
	r := build(ping, roll)

	for _, c := range []*cmd.Command{ping, roll} {
		got, ok := r.Resolve(c.Name)
		require.True(t, ok)
		assert.Same(t, c, got)
		for _, a := range c.Aliases {
			got, ok := r.Resolve(a)
			require.True(t, ok, "alias %q", a)
			assert.Same(t, c, got, "alias %q", a)
		}
	}

	_, ok := r.Resolve("missing")
	assert.False(t, ok)
}

func TestRegistry_CanonicalNameBeatsAlias(t *testing.T) {
	// "roll" is also an alias of "dice", but the canonical command wins.
	roll := newCommand("roll")
	dice := newCommand("dice", "roll")
	r := build(roll, dice)

	got, ok := r.Resolve("roll")
	require.True(t, ok)
	assert.Same(t, roll, got)
}

func TestRegistry_LastWriteWins(t *testing.T) {
	first := newCommand("ping", "p")
	second := newCommand("pong", "p")
	replacement := newCommand("ping")

	r := build(first, second, replacement)

	got, ok := r.Resolve("ping")
	require.True(t, ok)
	assert.Same(t, replacement, got)

	got, ok = r.Resolve("p")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestBuilder_DropsDanglingAliases(t *testing.T) {
	b := cmd.NewBuilder()
	b.Insert(newCommand("ping"))
	b.InsertAlias("x", "nothing")
	r := b.Build()

	_, ok := r.Resolve("x")
	assert.False(t, ok)
	assert.NotContains(t, r.Aliases(), "x")
}

func TestBuilder_BuildIsASnapshot(t *testing.T) {
	b := cmd.NewBuilder()
	b.Insert(newCommand("ping"))
	r := b.Build()

	b.Insert(newCommand("late"))
	b.InsertAlias("p", "ping")

	assert.Equal(t, 1, r.Len())
	_, ok := r.Resolve("late")
	assert.False(t, ok)
	_, ok = r.Resolve("p")
	assert.False(t, ok)
}

func TestRegistry_CommandsSorted(t *testing.T) {
	r := build(newCommand("roll"), newCommand("about"), newCommand("ping"))

	var names []string
	for _, c := range r.Commands() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"about", "ping", "roll"}, names)
}

func TestRegistry_AliasesIsACopy(t *testing.T) {
	r := build(newCommand("ping", "p"))
	a := r.Aliases()
	a["q"] = "ping"

	_, ok := r.Resolve("q")
	assert.False(t, ok)
}
