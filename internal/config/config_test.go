package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, "commands", cfg.CommandsPath)
	assert.Equal(t, "datastore.json", cfg.StoragePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.StrictLoad)
	assert.True(t, cfg.ErrorPayload().IsZero())
	assert.True(t, cfg.InvalidCommandPayload().IsZero())
}

func TestNew_Environment(t *testing.T) {
	t.Setenv("PREFIX", "?")
	t.Setenv("COMMANDS_PATH", "/srv/commands")
	t.Setenv("ERROR_MESSAGE", "oops")
	t.Setenv("INVALID_COMMAND_MESSAGE", "no such command")
	t.Setenv("STRICT_LOAD", "true")
	t.Setenv("REQUIRE_ARGS", "true")

	cfg, err := New(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "?", cfg.Prefix)
	assert.Equal(t, "/srv/commands", cfg.CommandsPath)
	assert.Equal(t, cmd.Text("oops"), cfg.ErrorPayload())
	assert.Equal(t, cmd.Text("no such command"), cfg.InvalidCommandPayload())
	assert.True(t, cfg.StrictLoad)
	assert.True(t, cfg.RequireArgs)
}

func TestNew_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CMDHANDLER_TEST_TOKEN=x\nTELEGRAM_TOKEN=from-file\n"), 0o644))
	t.Setenv("TELEGRAM_TOKEN", "")
	os.Unsetenv("TELEGRAM_TOKEN")
	t.Cleanup(func() { os.Unsetenv("CMDHANDLER_TEST_TOKEN") })

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.TelegramToken)
	assert.NoError(t, cfg.RequireTelegram())
}

func TestNew_InvalidValue(t *testing.T) {
	t.Setenv("STRICT_LOAD", "maybe")

	_, err := New(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestRequireTokens(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.RequireDiscord(), ErrNoDiscordToken)
	assert.ErrorIs(t, cfg.RequireTelegram(), ErrNoTelegramToken)

	cfg.DiscordToken = "d"
	assert.NoError(t, cfg.RequireDiscord())
}
