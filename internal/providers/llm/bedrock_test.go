package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuntime struct {
	calls []*bedrockruntime.InvokeModelInput
	body  string
	err   error
}

func (f *fakeRuntime) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.calls = append(f.calls, params)
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

type fakeLister struct {
	err error
}

func (f *fakeLister) ListFoundationModels(ctx context.Context, params *bedrock.ListFoundationModelsInput, optFns ...func(*bedrock.Options)) (*bedrock.ListFoundationModelsOutput, error) {
	return &bedrock.ListFoundationModelsOutput{}, f.err
}

func TestBedrock_Invoke(t *testing.T) {
	rt := &fakeRuntime{body: `{"content":[{"type":"text","text":"Hi Alice"}]}`}
	b := NewBedrockWith(rt, &fakeLister{}, DefaultGenerationConfig())

	res := b.Invoke(context.Background(), "anthropic.claude-3-haiku-20240307-v1:0", "hello")

	require.False(t, res.Failed())
	assert.Equal(t, "Hi Alice", res.Render())

	require.Len(t, rt.calls, 1)
	call := rt.calls[0]
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", aws.ToString(call.ModelId))
	assert.Equal(t, "application/json", aws.ToString(call.ContentType))
	assert.Equal(t, "application/json", aws.ToString(call.Accept))
	assert.Contains(t, string(call.Body), `"anthropic_version":"bedrock-2023-05-31"`)
}

func TestBedrock_InvokeFailureIsRendered(t *testing.T) {
	rt := &fakeRuntime{err: errors.New("AccessDeniedException: no access")}
	b := NewBedrockWith(rt, &fakeLister{}, DefaultGenerationConfig())

	res := b.Invoke(context.Background(), "openai.gpt-oss-20b-1:0", "hello")

	assert.True(t, res.Failed())
	assert.Equal(t, "Error calling Bedrock: AccessDeniedException: no access", res.Render())
}

func TestBedrock_InvokeBadBody(t *testing.T) {
	rt := &fakeRuntime{body: "not json"}
	b := NewBedrockWith(rt, &fakeLister{}, DefaultGenerationConfig())

	res := b.Invoke(context.Background(), "openai.gpt-oss-20b-1:0", "hello")

	assert.True(t, res.Failed())
	assert.Contains(t, res.Render(), "Error calling Bedrock: decode")
}

func TestBedrock_Ping(t *testing.T) {
	ok := NewBedrockWith(&fakeRuntime{}, &fakeLister{}, DefaultGenerationConfig())
	assert.NoError(t, ok.Ping(context.Background()))

	down := NewBedrockWith(&fakeRuntime{}, &fakeLister{err: errors.New("expired token")}, DefaultGenerationConfig())
	err := down.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired token")
}
