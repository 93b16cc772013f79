package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFamily(t *testing.T) {
	tests := []struct {
		modelID string
		want    Family
	}{
		{"openai.gpt-oss-20b-1:0", FamilyOpenAI},
		{"anthropic.claude-3-haiku-20240307-v1:0", FamilyAnthropic},
		{"us.deepseek.r1-v1:0", FamilyDeepSeekQwen},
		{"qwen.qwen3-32b-v1:0", FamilyDeepSeekQwen},
		{"meta.llama3-8b-instruct-v1:0", FamilyMetaMistral},
		{"mistral.mistral-7b-instruct-v0:2", FamilyMetaMistral},
		{"amazon.titan-text-express-v1", FamilyTitan},
		{"cohere.command-r-v1:0", FamilyUnknown},
		{"", FamilyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.modelID, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFamily(tt.modelID))
		})
	}
}

func decodeRequest(t *testing.T, modelID string) map[string]any {
	t.Helper()
	body, err := BuildRequest(modelID, "Hi there", DefaultGenerationConfig())
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(body, &obj))
	return obj
}

func TestBuildRequest_Anthropic(t *testing.T) {
	obj := decodeRequest(t, "anthropic.claude-3-sonnet-20240229-v1:0")

	assert.Equal(t, "bedrock-2023-05-31", obj["anthropic_version"])
	assert.EqualValues(t, 1000, obj["max_tokens"])
	assert.EqualValues(t, 0.7, obj["temperature"])
	assert.NotContains(t, obj, "top_p")

	msgs := obj["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, map[string]any{"role": "user", "content": "Hi there"}, msgs[0])
}

func TestBuildRequest_DeepSeekQwen(t *testing.T) {
	for _, id := range []string{"us.deepseek.r1-v1:0", "qwen.qwen3-32b-v1:0"} {
		obj := decodeRequest(t, id)

		assert.EqualValues(t, 0.9, obj["top_p"], id)
		assert.EqualValues(t, 1000, obj["max_tokens"], id)
		assert.Contains(t, obj, "messages", id)
		assert.NotContains(t, obj, "anthropic_version", id)
	}
}

func TestBuildRequest_PlainChat(t *testing.T) {
	for _, id := range []string{"mistral.mistral-7b-instruct-v0:2", "meta.llama3-8b", "openai.gpt-oss-20b-1:0", "unknown.model"} {
		obj := decodeRequest(t, id)

		assert.Len(t, obj, 3, id)
		assert.Contains(t, obj, "messages", id)
		assert.EqualValues(t, 1000, obj["max_tokens"], id)
		assert.EqualValues(t, 0.7, obj["temperature"], id)
	}
}

func TestBuildRequest_Titan(t *testing.T) {
	obj := decodeRequest(t, "amazon.titan-text-express-v1")

	assert.Equal(t, "Hi there", obj["inputText"])
	assert.NotContains(t, obj, "messages")
	assert.Equal(t, map[string]any{"maxTokenCount": float64(1000), "temperature": 0.7}, obj["textGenerationConfig"])
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "choices with message",
			body: `{"choices":[{"message":{"role":"assistant","content":"Hello Alice"}}]}`,
			want: "Hello Alice",
		},
		{
			name: "choices with text",
			body: `{"choices":[{"text":"  trimmed  "}]}`,
			want: "trimmed",
		},
		{
			name: "content parts",
			body: `{"content":[{"type":"text","text":"Hello"},{"type":"other"},{"type":"text","text":" world"}]}`,
			want: "Hello world",
		},
		{
			name: "content parts trimmed",
			body: `{"content":[{"type":"text","text":"\n  padded \n"}]}`,
			want: "padded",
		},
		{
			name: "titan results",
			body: `{"results":[{"outputText":"From Titan","tokenCount":3}]}`,
			want: "From Titan",
		},
		{
			name: "generation",
			body: `{"generation":" as is ","stop_reason":"stop"}`,
			want: " as is ",
		},
		{
			name: "empty choices falls through to content",
			body: `{"choices":[],"content":[{"type":"text","text":"next"}]}`,
			want: "next",
		},
		{
			name: "unknown shape rendered whole",
			body: `{"foo":"bar"}`,
			want: `{"foo":"bar"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseResponse_NotJSON(t *testing.T) {
	_, err := ParseResponse([]byte("<html>"))
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, "DeepSeek R1", c.Name("us.deepseek.r1-v1:0"))
	assert.Equal(t, "custom.model", c.Name("custom.model"))

	m, ok := c.Resolve("2")
	require.True(t, ok)
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", m.ID)

	_, ok = c.Resolve("0")
	assert.False(t, ok)
	_, ok = c.Resolve("99")
	assert.False(t, ok)

	m, ok = c.Resolve("qwen.qwen3-32b-v1:0")
	require.True(t, ok)
	assert.Equal(t, "Qwen 3 32B", m.Name)
}
