package memmachine

import (
	"context"
	"strings"
)

// Search returns the memories relevant to query separated by blank lines,
// episodic first (long term, then short term) and semantic after. Any error
// yields "".
func (c *Client) Search(ctx context.Context, query string) string {
	req := searchRequest{
		scope:  c.scope(),
		Query:  query,
		TopK:   c.cfg.TopK,
		Types:  MemoryTypes,
		Filter: c.filter(),
	}

	var resp map[string]any
	if err := c.post(ctx, "search", pathSearch, req, &resp); err != nil {
		c.warn(ctx, "Memory search", err)
		return ""
	}

	return strings.Join(collectSearch(resp), "\n\n")
}

func collectSearch(resp map[string]any) []string {
	content := asMap(resp["content"])
	if content == nil {
		return nil
	}

	var out []string

	episodic := asMap(content["episodic_memory"])
	for _, term := range []string{"long_term_memory", "short_term_memory"} {
		for _, ep := range asList(asMap(episodic[term])["episodes"]) {
			if s := firstText(asMap(ep), episodeTextKeys); s != "" {
				out = append(out, s)
			}
		}
	}

	for _, m := range semanticEntries(content["semantic_memory"]) {
		if s := firstText(asMap(m), semanticTextKeys); s != "" {
			out = append(out, s)
		}
	}

	return out
}

// semanticEntries accepts either a bare list or an object wrapping one.
func semanticEntries(v any) []any {
	if l := asList(v); l != nil {
		return l
	}
	m := asMap(v)
	for _, k := range []string{"memories", "features", "results"} {
		if l := asList(m[k]); l != nil {
			return l
		}
	}
	return nil
}
