package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/memchat/pkg/log"
)

type TelegramConfig struct {
	Token       string        `env:"TELEGRAM_TOKEN,required,notEmpty"`
	OwnerID     int64         `env:"TELEGRAM_OWNER_ID,required"`
	PollTimeout time.Duration `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"10s"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c, err := ParseTelegramConfig(nil)
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}

func ParseTelegramConfig(environ map[string]string) (*TelegramConfig, error) {
	c := &TelegramConfig{}
	if err := env.ParseWithOptions(c, env.Options{Environment: environ}); err != nil {
		return nil, err
	}
	return c, nil
}
