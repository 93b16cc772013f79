package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// shapeMatcher extracts the reply from one known response layout.
type shapeMatcher func(body map[string]any) (string, bool)

// responseShapes are tried in order, first match wins.
var responseShapes = []shapeMatcher{
	matchChoices,
	matchContent,
	matchResults,
	matchGeneration,
}

// ParseResponse extracts the generated text from an InvokeModel body.
// Unknown layouts are returned as the re-encoded body.
func ParseResponse(body []byte) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	for _, match := range responseShapes {
		if text, ok := match(obj); ok {
			return text, nil
		}
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return fmt.Sprint(obj), nil
	}
	return string(raw), nil
}

// OpenAI style: {"choices":[{"message":{"content":...}}]} or [{"text":...}]
func matchChoices(body map[string]any) (string, bool) {
	choices, ok := body["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}
	choice, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}
	if msg, ok := choice["message"].(map[string]any); ok {
		return stringify(msg["content"]), true
	}
	if text, ok := choice["text"]; ok {
		return strings.TrimSpace(stringify(text)), true
	}
	return "", false
}

// Anthropic style: {"content":[{"type":"text","text":...}, ...]}
func matchContent(body map[string]any) (string, bool) {
	content, ok := body["content"]
	if !ok {
		return "", false
	}

	switch c := content.(type) {
	case []any:
		var b strings.Builder
		for _, p := range c {
			part, ok := p.(map[string]any)
			if !ok || part["type"] != "text" {
				continue
			}
			b.WriteString(stringify(part["text"]))
		}
		return strings.TrimSpace(b.String()), true
	case map[string]any:
		return stringify(c["text"]), true
	case string:
		return c, true
	default:
		return "", false
	}
}

// Titan style: {"results":[{"outputText":...}]}
func matchResults(body map[string]any) (string, bool) {
	results, ok := body["results"].([]any)
	if !ok || len(results) == 0 {
		return "", false
	}
	first, ok := results[0].(map[string]any)
	if !ok {
		return "", false
	}
	return stringify(first["outputText"]), true
}

// Meta style: {"generation":...}
func matchGeneration(body map[string]any) (string, bool) {
	gen, ok := body["generation"]
	if !ok {
		return "", false
	}
	return stringify(gen), true
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
