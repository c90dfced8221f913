// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/keshon/cmdhandler/pkg/cmd"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoDiscordToken  = errors.New("DISCORD_TOKEN is not set")
	ErrNoTelegramToken = errors.New("TELEGRAM_TOKEN is not set")
)

// Config holds everything the binaries read from the environment.
type Config struct {
	Prefix                string `env:"PREFIX" envDefault:"!"`
	CommandsPath          string `env:"COMMANDS_PATH" envDefault:"commands"`
	ErrorMessage          string `env:"ERROR_MESSAGE"`
	InvalidCommandMessage string `env:"INVALID_COMMAND_MESSAGE"`
	StrictLoad            bool   `env:"STRICT_LOAD"`
	RequireArgs           bool   `env:"REQUIRE_ARGS"`

	DiscordToken  string `env:"DISCORD_TOKEN"`
	TelegramToken string `env:"TELEGRAM_TOKEN"`

	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty   bool   `env:"LOG_PRETTY"`
}

// New loads .env files (if any) into the environment and parses it.
func New(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
		log.Debug().Msg("No .env file found, falling back to system environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// ErrorPayload is the reply sent when a command fails, zero when unset.
func (c *Config) ErrorPayload() cmd.Payload {
	return cmd.Text(c.ErrorMessage)
}

// InvalidCommandPayload is the reply sent for unknown commands, zero when unset.
func (c *Config) InvalidCommandPayload() cmd.Payload {
	return cmd.Text(c.InvalidCommandMessage)
}

// RequireDiscord checks the settings the Discord transport needs.
func (c *Config) RequireDiscord() error {
	if c.DiscordToken == "" {
		return ErrNoDiscordToken
	}
	return nil
}

// RequireTelegram checks the settings the Telegram transport needs.
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return ErrNoTelegramToken
	}
	return nil
}
