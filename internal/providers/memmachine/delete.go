package memmachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/memchat/pkg/log"
)

// Delete removes the given ids of class t in a single call.
func (c *Client) Delete(ctx context.Context, t MemoryType, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	req := map[string]any{
		"org_id":           c.cfg.OrgID,
		"project_id":       c.cfg.ProjectID,
		string(t) + "_ids": ids,
	}
	path := fmt.Sprintf("%s/%s/delete", pathMemories, t)

	if err := c.post(ctx, "delete", path, req, nil); err != nil {
		return fmt.Errorf("delete %d %s memories: %w", len(ids), t, err)
	}
	return nil
}

// DeleteAllForUser removes every memory of the configured user, class by
// class. A failing class does not stop the others; ids collected before a
// list failure are still deleted.
func (c *Client) DeleteAllForUser(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	var errs []error
	for _, t := range MemoryTypes {
		ids, err := c.IDs(ctx, t)
		if err != nil {
			errs = append(errs, err)
		}

		if err := c.Delete(ctx, t, ids); err != nil {
			errs = append(errs, err)
			continue
		}

		logger.Info().
			Str("user_id", c.cfg.UserID).
			Str("type", string(t)).
			Int("deleted", len(ids)).
			Msg("memories deleted")
	}

	if err := errors.Join(errs...); err != nil {
		c.warn(ctx, "Memory delete", err)
		return err
	}
	return nil
}
