package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/tuskchat/internal/core"
)

type TelegramConfig struct {
	Token   string `env:"TUSK_TELEGRAM_TOKEN,required,notEmpty"`
	OwnerID int64  `env:"TUSK_TELEGRAM_OWNER_ID,required"`
}

func NewTelegramConfig() (*TelegramConfig, error) {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("%w: telegram: %w", core.ErrConfiguration, err)
	}
	return c, nil
}
