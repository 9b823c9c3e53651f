package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/tuskchat/internal/core"
)

const (
	BackendKV     = "kv"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type AppConfig struct {
	RuntimePath string `env:"TUSK_RUNTIME_PATH" envDefault:".tuskchat"`

	// Single logical identity, threaded explicitly through every store call
	UserID string `env:"TUSK_USER_ID" envDefault:"default-user"`

	// History persistence
	Backend      string `env:"TUSK_HISTORY_BACKEND" envDefault:"kv"`
	HistoryLimit int    `env:"TUSK_HISTORY_LIMIT" envDefault:"50"`

	// Number of most recent turns passed to the model as context
	ContextTurns int `env:"TUSK_CONTEXT_TURNS" envDefault:"5"`

	// Transport Flags
	EnableTelegram bool `env:"TUSK_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"TUSK_ENABLE_CLI" envDefault:"true"`
}

func NewAppConfig() (*AppConfig, error) {
	return parseAppConfig(env.Options{})
}

func parseAppConfig(opts env.Options) (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("%w: app: %w", core.ErrConfiguration, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%w: app: %w", core.ErrConfiguration, err)
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c, nil
}

func (c *AppConfig) validate() error {
	switch c.Backend {
	case BackendKV, BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown history backend %q", c.Backend)
	}
	if c.UserID == "" {
		return core.ErrEmptyUserID
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.HistoryLimit)
	}
	if c.ContextTurns < 0 {
		return fmt.Errorf("context turns must not be negative, got %d", c.ContextTurns)
	}
	return nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "history.db")
}

func (c AppConfig) GetInputHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
