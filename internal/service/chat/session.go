package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/memchat/internal/core"
	"github.com/sandevgo/memchat/internal/providers/llm"
)

var (
	ErrUnknownModel = errors.New("unknown model")
	ErrNoMemory     = errors.New("memory is not enabled in this session")
)

type Option func(*Session)

func WithCatalog(c llm.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

func WithTokenCounter(tc core.TokenCounter) Option {
	return func(s *Session) { s.counter = tc }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithWarnings sets the queue the session's memory store notifies. Without
// it the session gets a private, empty queue.
func WithWarnings(q *core.WarningQueue) Option {
	return func(s *Session) { s.warnings = q }
}

// Session is one conversation. Its mode is fixed at construction; the model
// can change between turns without touching memory.
type Session struct {
	ID     string
	UserID string

	mode     core.Mode
	llm      core.ModelClient
	memory   core.MemoryStore
	counter  core.TokenCounter
	catalog  llm.Catalog
	now      func() time.Time
	warnings *core.WarningQueue

	mu          sync.Mutex
	modelID     string
	showContext bool
	turns       []core.Turn
}

func NewStateless(client core.ModelClient, modelID string, opts ...Option) *Session {
	return newSession(core.ModeStateless, client, nil, "", modelID, opts)
}

func NewMemory(client core.ModelClient, memory core.MemoryStore, userID, modelID string, opts ...Option) *Session {
	return newSession(core.ModeMemory, client, memory, userID, modelID, opts)
}

func newSession(
	mode core.Mode,
	client core.ModelClient,
	memory core.MemoryStore,
	userID, modelID string,
	opts []Option,
) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		UserID:  userID,
		mode:    mode,
		llm:     client,
		memory:  memory,
		catalog: llm.DefaultCatalog(),
		now:     time.Now,
		modelID: modelID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.warnings == nil {
		s.warnings = &core.WarningQueue{}
	}
	return s
}

func (s *Session) Mode() core.Mode {
	return s.mode
}

func (s *Session) Catalog() llm.Catalog {
	return s.catalog
}

func (s *Session) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modelID
}

// SetModel switches the model used by the next turns. ref is a catalog id
// or a 1-based catalog position.
func (s *Session) SetModel(ref string) (core.Model, error) {
	m, ok := s.catalog.Resolve(ref)
	if !ok {
		return core.Model{}, fmt.Errorf("%w: %s", ErrUnknownModel, ref)
	}

	s.mu.Lock()
	s.modelID = m.ID
	s.mu.Unlock()
	return m, nil
}

func (s *Session) ShowContext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showContext
}

// ToggleContext flips whether retrieved context is displayed and returns
// the new value.
func (s *Session) ToggleContext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showContext = !s.showContext
	return s.showContext
}

// DrainWarnings returns the memory warnings raised since the last call.
func (s *Session) DrainWarnings() []string {
	return s.warnings.Drain()
}

func (s *Session) Transcript() []core.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Clear() {
	s.mu.Lock()
	s.turns = nil
	s.mu.Unlock()
}

// Forget deletes every stored memory of the user and clears the transcript.
func (s *Session) Forget(ctx context.Context) error {
	if s.mode != core.ModeMemory {
		return ErrNoMemory
	}
	if err := s.memory.DeleteAllForUser(ctx); err != nil {
		return fmt.Errorf("forget: %w", err)
	}
	s.Clear()
	return nil
}

// Check is the outcome of one connectivity probe.
type Check struct {
	Name string
	Err  error
}

func (c Check) OK() bool {
	return c.Err == nil
}

// Health probes the model endpoint and, in memory mode, the memory server.
func (s *Session) Health(ctx context.Context) []Check {
	checks := []Check{{Name: "Bedrock", Err: s.llm.Ping(ctx)}}
	if s.mode == core.ModeMemory {
		checks = append(checks, Check{Name: "Memory server", Err: s.memory.Health(ctx)})
	}
	return checks
}

// Recall searches the user's memories without running a turn.
func (s *Session) Recall(ctx context.Context, query string) (string, error) {
	if s.mode != core.ModeMemory {
		return "", ErrNoMemory
	}
	return s.memory.Search(ctx, query), nil
}
