package memmachine

import (
	"context"

	"github.com/sandevgo/memchat/internal/core"
)

const (
	producedFor     = "agent"
	timestampLayout = "2006-01-02T15:04:05.000000Z"
)

// Add stores one message for the configured user. It reports false instead
// of failing so a chat turn can go on without memory.
func (c *Client) Add(ctx context.Context, content string, role core.Role) bool {
	req := addRequest{
		scope: c.scope(),
		Messages: []Message{{
			Content:     content,
			Producer:    c.cfg.UserID,
			ProducedFor: producedFor,
			Role:        string(role),
			Timestamp:   c.now().UTC().Format(timestampLayout),
			Metadata:    map[string]string{"user_id": c.cfg.UserID},
		}},
	}

	if err := c.post(ctx, "add", pathMemories, req, nil); err != nil {
		c.warn(ctx, "Memory add", err)
		return false
	}
	return true
}
