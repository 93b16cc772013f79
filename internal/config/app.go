package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	Region  string `env:"AWS_REGION" envDefault:"us-west-2"`
	ModelID string `env:"BEDROCK_MODEL_ID" envDefault:"openai.gpt-oss-20b-1:0"`

	// Generation parameters sent with every request
	MaxTokens   int     `env:"MODEL_MAX_TOKENS" envDefault:"1000"`
	Temperature float64 `env:"MODEL_TEMPERATURE" envDefault:"0.7"`
	TopP        float64 `env:"MODEL_TOP_P" envDefault:"0.9"`

	// Delay between words when a reply is revealed
	TypingSpeed time.Duration `env:"TYPING_SPEED" envDefault:"20ms"`

	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
}

// ParseAppConfig reads the config from environ, or from the process
// environment when environ is nil.
func ParseAppConfig(environ map[string]string) (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.ParseWithOptions(c, env.Options{Environment: environ}); err != nil {
		return nil, err
	}
	return c, nil
}
