package memmachine

import (
	"encoding/json"
	"fmt"
	"strings"
)

type MemoryType string

const (
	Episodic MemoryType = "episodic"
	Semantic MemoryType = "semantic"
)

// MemoryTypes is the order in which classes are listed and deleted.
var MemoryTypes = []MemoryType{Episodic, Semantic}

// idKeys lists, per class, the fields that may carry a record id.
var idKeys = map[MemoryType][]string{
	Episodic: {"id", "uid", "episode_id"},
	Semantic: {"id", "feature_id", "semantic_id"},
}

var (
	episodeTextKeys  = []string{"content", "episode_content"}
	semanticTextKeys = []string{"content", "memory_content"}
)

type Message struct {
	Content     string            `json:"content"`
	Producer    string            `json:"producer"`
	ProducedFor string            `json:"produced_for"`
	Role        string            `json:"role"`
	Timestamp   string            `json:"timestamp"`
	Metadata    map[string]string `json:"metadata"`
}

type scope struct {
	OrgID     string `json:"org_id"`
	ProjectID string `json:"project_id"`
}

type addRequest struct {
	scope
	Messages []Message `json:"messages"`
}

type searchRequest struct {
	scope
	Query  string       `json:"query"`
	TopK   int          `json:"top_k"`
	Types  []MemoryType `json:"types"`
	Filter string       `json:"filter"`
}

type listRequest struct {
	scope
	Filter   string     `json:"filter"`
	Type     MemoryType `json:"type"`
	PageSize int        `json:"page_size"`
	PageNum  int        `json:"page_num"`
}

// Record is a memory as returned by the list endpoint. Its layout differs
// between classes and server versions, so it stays loosely typed.
type Record map[string]any

// ID returns the first non-empty id among keys.
func (r Record) ID(keys []string) string {
	for _, k := range keys {
		if id := text(r[k]); id != "" {
			return id
		}
	}
	return ""
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

// firstText returns the first non-empty string field among keys.
func firstText(m map[string]any, keys []string) string {
	for _, k := range keys {
		if s := text(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}
