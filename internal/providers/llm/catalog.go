package llm

import (
	"strconv"

	"github.com/sandevgo/memchat/internal/core"
)

// Catalog lists on-demand models. Models that need a provisioned inference
// profile are left out.
type Catalog []core.Model

func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "openai.gpt-oss-20b-1:0", Name: "OpenAI GPT-OSS 20B"},
		{ID: "anthropic.claude-3-sonnet-20240229-v1:0", Name: "Anthropic Claude 3 Sonnet"},
		{ID: "anthropic.claude-3-haiku-20240307-v1:0", Name: "Anthropic Claude 3 Haiku"},
		{ID: "us.deepseek.r1-v1:0", Name: "DeepSeek R1"},
		{ID: "qwen.qwen3-32b-v1:0", Name: "Qwen 3 32B"},
		{ID: "mistral.mixtral-8x7b-instruct-v0:1", Name: "Mistral Mixtral 8x7B Instruct"},
		{ID: "mistral.mistral-7b-instruct-v0:2", Name: "Mistral 7B Instruct"},
	}
}

func (c Catalog) Lookup(id string) (core.Model, bool) {
	for _, m := range c {
		if m.ID == id {
			return m, true
		}
	}
	return core.Model{}, false
}

// Name falls back to the id for models outside the catalog.
func (c Catalog) Name(id string) string {
	if m, ok := c.Lookup(id); ok {
		return m.Name
	}
	return id
}

// Resolve accepts an id or a 1-based position in the catalog.
func (c Catalog) Resolve(ref string) (core.Model, bool) {
	if m, ok := c.Lookup(ref); ok {
		return m, true
	}
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(c) {
		return core.Model{}, false
	}
	return c[n-1], true
}
