package chat

import (
	"context"

	"github.com/sandevgo/memchat/internal/core"
	"github.com/sandevgo/memchat/pkg/conv"
	"github.com/sandevgo/memchat/pkg/log"
)

const assistantPrefix = "Assistant: "

// Reply is the outcome of one turn. A failed model call is still a reply:
// Text then carries the error.
type Reply struct {
	Text         string
	Context      string
	Model        string
	Template     Template
	PromptTokens int
	Failed       bool
}

// Respond runs one turn. Turns of a session never overlap.
func (s *Session) Respond(ctx context.Context, message string) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := log.FromCtx(ctx).With().
		Str("session_id", s.ID).
		Str("mode", s.mode.String()).
		Str("model", s.modelID).
		Logger()
	ctx = logger.WithContext(ctx)

	var memoryContext string
	if s.mode == core.ModeMemory {
		if !s.memory.Add(ctx, message, core.RoleUser) {
			logger.Debug().Msg("user message not stored")
		}
		memoryContext = s.memory.Search(ctx, message)
	}

	prompt, tmpl := BuildPrompt(memoryContext, message)

	res := s.llm.Invoke(ctx, s.modelID, prompt)
	text := conv.StripReasoning(res.Render())

	if s.mode == core.ModeMemory {
		if !s.memory.Add(ctx, assistantPrefix+text, core.RoleAssistant) {
			logger.Debug().Msg("assistant reply not stored")
		}
	}

	reply := Reply{
		Text:     text,
		Context:  memoryContext,
		Model:    s.modelID,
		Template: tmpl,
		Failed:   res.Failed(),
	}
	if s.counter != nil {
		reply.PromptTokens = s.counter.Count(prompt)
	}

	now := s.now()
	s.turns = append(s.turns,
		core.Turn{Role: core.RoleUser, Content: message, At: now},
		core.Turn{Role: core.RoleAssistant, Content: text, Context: memoryContext, Model: s.modelID, At: now},
	)

	logger.Info().
		Str("template", string(tmpl)).
		Int("context_len", len(memoryContext)).
		Bool("failed", reply.Failed).
		Msg("turn completed")

	return reply
}
