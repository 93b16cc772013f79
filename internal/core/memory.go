package core

import (
	"context"
	"sync"
)

// MemoryStore is the remote memory service as seen by a chat session.
// Add and Search degrade instead of failing: false and "" on any error.
type MemoryStore interface {
	Add(ctx context.Context, content string, role Role) bool
	Search(ctx context.Context, query string) string
	DeleteAllForUser(ctx context.Context) error
	Health(ctx context.Context) error
}

// Notifier receives non-fatal warnings meant for the person chatting.
type Notifier interface {
	Warn(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Warn(msg string) { f(msg) }

// WarningQueue collects warnings until the presentation layer drains them
// after a turn.
type WarningQueue struct {
	mu   sync.Mutex
	msgs []string
}

func (q *WarningQueue) Warn(msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, msg)
}

func (q *WarningQueue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	msgs := q.msgs
	q.msgs = nil
	return msgs
}
