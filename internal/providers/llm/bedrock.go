package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/sandevgo/memchat/internal/core"
	"github.com/sandevgo/memchat/pkg/log"
)

const (
	contentTypeJSON = "application/json"
	pingTimeout     = 10 * time.Second
)

// Invoker is the part of the Bedrock runtime client used for inference.
type Invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// ModelLister is the part of the Bedrock control plane client used to check
// connectivity.
type ModelLister interface {
	ListFoundationModels(ctx context.Context, params *bedrock.ListFoundationModelsInput, optFns ...func(*bedrock.Options)) (*bedrock.ListFoundationModelsOutput, error)
}

type Bedrock struct {
	runtime Invoker
	control ModelLister
	gen     GenerationConfig
}

// NewBedrock builds clients from the default AWS credential chain.
func NewBedrock(ctx context.Context, region string, gen GenerationConfig) (*Bedrock, error) {
	log.FromCtx(ctx).Info().
		Str("region", region).
		Msg("starting bedrock client")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewBedrockWith(
		bedrockruntime.NewFromConfig(awsCfg),
		bedrock.NewFromConfig(awsCfg),
		gen,
	), nil
}

func NewBedrockWith(runtime Invoker, control ModelLister, gen GenerationConfig) *Bedrock {
	return &Bedrock{
		runtime: runtime,
		control: control,
		gen:     gen,
	}
}

// Invoke never fails: errors are returned inside the result.
func (b *Bedrock) Invoke(ctx context.Context, modelID, prompt string) core.InvokeResult {
	logger := log.FromCtx(ctx).With().
		Str("model", modelID).
		Stringer("family", ResolveFamily(modelID)).
		Logger()

	text, err := b.invoke(ctx, modelID, prompt)
	if err != nil {
		logger.Error().Err(err).Msg("bedrock invocation failed")
		return core.InvokeResult{Err: err}
	}

	logger.Debug().Int("chars", len(text)).Msg("bedrock invocation done")
	return core.InvokeResult{Text: text}
}

func (b *Bedrock) invoke(ctx context.Context, modelID, prompt string) (string, error) {
	body, err := BuildRequest(modelID, prompt, b.gen)
	if err != nil {
		return "", err
	}

	out, err := b.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        body,
		ContentType: aws.String(contentTypeJSON),
		Accept:      aws.String(contentTypeJSON),
	})
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", fmt.Errorf("empty response")
	}

	return ParseResponse(out.Body)
}

// Ping checks credentials and region by listing foundation models.
func (b *Bedrock) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := b.control.ListFoundationModels(ctx, &bedrock.ListFoundationModelsInput{}); err != nil {
		return fmt.Errorf("list foundation models: %w", err)
	}
	return nil
}
