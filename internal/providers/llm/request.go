package llm

import (
	"encoding/json"
	"fmt"
)

const anthropicBedrockVersion = "bedrock-2023-05-31"

type GenerationConfig struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		MaxTokens:   1000,
		Temperature: 0.7,
		TopP:        0.9,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	AnthropicVersion string        `json:"anthropic_version,omitempty"`
	Messages         []chatMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens"`
	Temperature      float64       `json:"temperature"`
	TopP             *float64      `json:"top_p,omitempty"`
}

type titanRequest struct {
	InputText            string `json:"inputText"`
	TextGenerationConfig struct {
		MaxTokenCount int     `json:"maxTokenCount"`
		Temperature   float64 `json:"temperature"`
	} `json:"textGenerationConfig"`
}

// BuildRequest renders the InvokeModel body for the family of modelID.
func BuildRequest(modelID, prompt string, gen GenerationConfig) ([]byte, error) {
	var payload any

	switch family := ResolveFamily(modelID); family {
	case FamilyAnthropic:
		payload = chatRequest{
			AnthropicVersion: anthropicBedrockVersion,
			Messages:         userMessage(prompt),
			MaxTokens:        gen.MaxTokens,
			Temperature:      gen.Temperature,
		}
	case FamilyDeepSeekQwen:
		topP := gen.TopP
		payload = chatRequest{
			Messages:    userMessage(prompt),
			MaxTokens:   gen.MaxTokens,
			Temperature: gen.Temperature,
			TopP:        &topP,
		}
	case FamilyTitan:
		req := titanRequest{InputText: prompt}
		req.TextGenerationConfig.MaxTokenCount = gen.MaxTokens
		req.TextGenerationConfig.Temperature = gen.Temperature
		payload = req
	case FamilyOpenAI, FamilyMetaMistral, FamilyUnknown:
		payload = chatRequest{
			Messages:    userMessage(prompt),
			MaxTokens:   gen.MaxTokens,
			Temperature: gen.Temperature,
		}
	default:
		return nil, fmt.Errorf("unhandled model family: %s", family)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return data, nil
}

func userMessage(prompt string) []chatMessage {
	return []chatMessage{{Role: "user", Content: prompt}}
}
