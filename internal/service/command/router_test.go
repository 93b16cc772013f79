package command

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/memchat/internal/core"
	"github.com/sandevgo/memchat/internal/service/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	pingErr error
}

func (m *stubModel) Invoke(context.Context, string, string) core.InvokeResult {
	return core.InvokeResult{Text: "ok"}
}

func (m *stubModel) Ping(context.Context) error { return m.pingErr }

type stubMemory struct {
	deleteErr error
	deletes   int
	healthErr error
}

func (m *stubMemory) Add(context.Context, string, core.Role) bool { return true }
func (m *stubMemory) Search(context.Context, string) string      { return "" }
func (m *stubMemory) Health(context.Context) error               { return m.healthErr }

func (m *stubMemory) DeleteAllForUser(context.Context) error {
	m.deletes++
	return m.deleteErr
}

const defaultModel = "openai.gpt-oss-20b-1:0"

func TestRouter_NotACommand(t *testing.T) {
	r := NewDefault()
	s := chat.NewStateless(&stubModel{}, defaultModel)

	out, ok := r.Execute(context.Background(), s, "hello /model")
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestRouter_UnknownCommand(t *testing.T) {
	r := NewDefault()
	s := chat.NewStateless(&stubModel{}, defaultModel)

	out, ok := r.Execute(context.Background(), s, "/teleport now")
	assert.True(t, ok)
	assert.Equal(t, "Unknown command: /teleport", out)
}

func TestRouter_StripsBotName(t *testing.T) {
	r := NewDefault()
	s := chat.NewStateless(&stubModel{}, defaultModel)

	out, ok := r.Execute(context.Background(), s, "/help@memchat_bot")
	assert.True(t, ok)
	assert.Contains(t, out, "Commands")
}

func TestModelCommand(t *testing.T) {
	r := NewDefault()
	mem := &stubMemory{}
	s := chat.NewMemory(&stubModel{}, mem, "alice", defaultModel)
	ctx := context.Background()

	out, _ := r.Execute(ctx, s, "/model")
	assert.Contains(t, out, "OpenAI GPT-OSS 20B")
	assert.Contains(t, out, "◀")

	out, _ = r.Execute(ctx, s, "/model 3")
	assert.Contains(t, out, "Model changed to: Anthropic Claude 3 Haiku")
	assert.Contains(t, out, "memories are kept")
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", s.Model())

	out, _ = r.Execute(ctx, s, "/model gpt-99")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "unknown model")
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", s.Model())
}

func TestContextCommand(t *testing.T) {
	r := NewDefault()
	s := chat.NewStateless(&stubModel{}, defaultModel)

	out, _ := r.Execute(context.Background(), s, "/context")
	assert.Contains(t, out, "will be shown")
	assert.True(t, s.ShowContext())

	out, _ = r.Execute(context.Background(), s, "/context")
	assert.Contains(t, out, "hidden")
	assert.False(t, s.ShowContext())
}

func TestClearCommand(t *testing.T) {
	r := NewDefault()
	s := chat.NewStateless(&stubModel{}, defaultModel)
	s.Respond(context.Background(), "hi")
	require.Len(t, s.Transcript(), 2)

	out, _ := r.Execute(context.Background(), s, "/clear")
	assert.Contains(t, out, "Conversation cleared")
	assert.Empty(t, s.Transcript())
}

func TestForgetCommand(t *testing.T) {
	tests := []struct {
		name      string
		memory    bool
		deleteErr error
		want      string
		deletes   int
	}{
		{name: "memory mode", memory: true, want: "All memories of alice deleted", deletes: 1},
		{name: "delete fails", memory: true, deleteErr: errors.New("http 500"), want: "http 500", deletes: 1},
		{name: "stateless", memory: false, want: "nothing is stored", deletes: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := &stubMemory{deleteErr: tt.deleteErr}
			var s *chat.Session
			if tt.memory {
				s = chat.NewMemory(&stubModel{}, mem, "alice", defaultModel)
			} else {
				s = chat.NewStateless(&stubModel{}, defaultModel)
			}

			out, ok := NewDefault().Execute(context.Background(), s, "/forget")
			assert.True(t, ok)
			assert.Contains(t, out, tt.want)
			assert.Equal(t, tt.deletes, mem.deletes)
		})
	}
}

func TestHealthCommand(t *testing.T) {
	mem := &stubMemory{healthErr: errors.New("connection refused")}
	s := chat.NewMemory(&stubModel{}, mem, "alice", defaultModel)

	out, _ := NewDefault().Execute(context.Background(), s, "/health")

	assert.Contains(t, out, "✅ **Bedrock**  ›  connected")
	assert.Contains(t, out, "❌ **Memory server**  ›  connection refused")
}

func TestHelpCommand_ListsEverything(t *testing.T) {
	r := NewDefault()
	out, _ := r.Execute(context.Background(), chat.NewStateless(&stubModel{}, defaultModel), "/help")

	for _, name := range []string{"/model", "/context", "/clear", "/forget", "/health", "/help"} {
		assert.Contains(t, out, name)
	}

	cmds := r.ListCommands()
	require.Len(t, cmds, 6)
	assert.Equal(t, "clear", cmds[0].Name())
}
