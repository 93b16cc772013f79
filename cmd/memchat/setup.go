package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/memchat/internal/config"
	"github.com/sandevgo/memchat/internal/core"
	"github.com/sandevgo/memchat/internal/providers/llm"
	"github.com/sandevgo/memchat/internal/providers/memmachine"
	"github.com/sandevgo/memchat/internal/service/chat"
	"github.com/sandevgo/memchat/pkg/log"
	"github.com/sandevgo/memchat/pkg/tokens"
)

// deps is everything a transport needs to open sessions.
type deps struct {
	app     *config.AppConfig
	model   *llm.Bedrock
	memory  *memmachine.Config
	counter *tokens.Counter
}

// newDeps loads the environment and builds the clients. withMemory fails fast
// when the memory server settings are incomplete.
func newDeps(ctx context.Context, withMemory bool) (*deps, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("init env: %w", err)
	}

	app, err := config.ParseAppConfig(nil)
	if err != nil {
		return nil, fmt.Errorf("app config: %w", err)
	}

	model, err := llm.NewBedrock(ctx, app.Region, llm.GenerationConfig{
		MaxTokens:   app.MaxTokens,
		Temperature: app.Temperature,
		TopP:        app.TopP,
	})
	if err != nil {
		return nil, err
	}

	d := &deps{
		app:     app,
		model:   model,
		counter: tokens.NewCounter(),
	}

	if withMemory {
		memCfg, err := config.ParseMemoryConfig(nil)
		if err != nil {
			return nil, fmt.Errorf("memory config: %w", err)
		}
		mc := memmachine.NewConfig(memCfg)
		d.memory = &mc
		log.FromCtx(ctx).Info().
			Str("server", mc.BaseURL).
			Str("user_id", mc.UserID).
			Msg("memory client ready")
	}

	return d, nil
}

// newSession opens a conversation. Memory sessions get their own client and
// warning queue, so concurrent chats never see each other's warnings.
func (d *deps) newSession() *chat.Session {
	warnings := &core.WarningQueue{}
	opts := []chat.Option{chat.WithTokenCounter(d.counter), chat.WithWarnings(warnings)}
	if d.memory == nil {
		return chat.NewStateless(d.model, d.app.ModelID, opts...)
	}

	client := memmachine.NewClient(*d.memory, memmachine.WithNotifier(warnings))
	return chat.NewMemory(d.model, client, client.UserID(), d.app.ModelID, opts...)
}

func (d *deps) serverURL() string {
	if d.memory == nil {
		return ""
	}
	return d.memory.BaseURL
}

// initEnv loads <runtime>/.env, then ./.env. Variables already set in the
// process environment win.
func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)

	for _, envFile := range []string{filepath.Join(runtimePath, ".env"), ".env"} {
		if _, err := os.Stat(envFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}

		if err := godotenv.Load(envFile); err != nil {
			logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
			return err
		}
		logger.Debug().Str("path", envFile).Msg("loaded .env file")
	}

	return nil
}
