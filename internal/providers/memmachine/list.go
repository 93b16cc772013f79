package memmachine

import (
	"context"
	"fmt"
)

// ListPage returns one page of the user's memories of class t. pageNum
// starts at 0. hasMore is true when the page came back full.
func (c *Client) ListPage(ctx context.Context, t MemoryType, pageNum int) ([]Record, bool, error) {
	req := listRequest{
		scope:    c.scope(),
		Filter:   c.filter(),
		Type:     t,
		PageSize: c.cfg.PageSize,
		PageNum:  pageNum,
	}

	var resp map[string]any
	if err := c.post(ctx, "list", pathList, req, &resp); err != nil {
		return nil, false, fmt.Errorf("list %s page %d: %w", t, pageNum, err)
	}

	raw := asList(asMap(resp["content"])[string(t)+"_memory"])
	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		if m := asMap(item); m != nil {
			records = append(records, Record(m))
		}
	}

	return records, len(raw) >= c.cfg.PageSize, nil
}

// IDs pages through every memory of class t and returns their ids.
func (c *Client) IDs(ctx context.Context, t MemoryType) ([]string, error) {
	var ids []string
	for page := 0; ; page++ {
		records, more, err := c.ListPage(ctx, t, page)
		if err != nil {
			return ids, err
		}
		for _, r := range records {
			if id := r.ID(idKeys[t]); id != "" {
				ids = append(ids, id)
			}
		}
		if !more {
			return ids, nil
		}
	}
}
