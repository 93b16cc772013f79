//go:build integration

package memmachine

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sandevgo/memchat/internal/config"
	"github.com/sandevgo/memchat/internal/core"
	"github.com/sandevgo/memchat/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server configured in <runtime>/.env or the environment:
//
//	go test -tags integration ./internal/providers/memmachine/
func newLiveClient(t *testing.T) (context.Context, *Client) {
	t.Helper()
	_ = godotenv.Load(config.GetEnvPath())

	memCfg, err := config.ParseMemoryConfig(nil)
	if err != nil {
		t.Skipf("memory server not configured: %v", err)
	}
	// isolate the run from real memories of the configured user
	memCfg.UserID = "it-" + uuid.NewString()

	ctx, flush := log.NewContextWithLogger(context.Background(), true)
	t.Cleanup(flush)

	c := NewClient(NewConfig(memCfg), WithNotifier(core.NotifierFunc(func(msg string) {
		t.Log(msg)
	})))
	if err := c.Health(ctx); err != nil {
		t.Skipf("memory server unreachable: %v", err)
	}
	return ctx, c
}

func TestLive_AddSearchForget(t *testing.T) {
	ctx, c := newLiveClient(t)
	t.Cleanup(func() { _ = c.DeleteAllForUser(ctx) })

	require.True(t, c.Add(ctx, "My name is Alice and I like hiking", core.RoleUser))
	require.True(t, c.Add(ctx, "Assistant: Nice to meet you, Alice!", core.RoleAssistant))

	got := c.Search(ctx, "What's my name?")
	assert.Contains(t, got, "Alice")

	require.NoError(t, c.DeleteAllForUser(ctx))
	for _, mt := range MemoryTypes {
		ids, err := c.IDs(ctx, mt)
		require.NoError(t, err)
		assert.Empty(t, ids, string(mt))
	}
}
