package llm

import "strings"

// Family groups Bedrock models sharing one request/response wire format.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyOpenAI
	FamilyAnthropic
	FamilyDeepSeekQwen
	FamilyMetaMistral
	FamilyTitan
)

var familyPrefixes = []struct {
	prefix string
	family Family
}{
	{"openai.", FamilyOpenAI},
	{"anthropic.", FamilyAnthropic},
	{"us.deepseek.", FamilyDeepSeekQwen},
	{"qwen.", FamilyDeepSeekQwen},
	{"meta.", FamilyMetaMistral},
	{"mistral.", FamilyMetaMistral},
	{"amazon.titan", FamilyTitan},
}

// ResolveFamily maps a model id to its family by prefix.
func ResolveFamily(modelID string) Family {
	for _, p := range familyPrefixes {
		if strings.HasPrefix(modelID, p.prefix) {
			return p.family
		}
	}
	return FamilyUnknown
}

func (f Family) String() string {
	switch f {
	case FamilyOpenAI:
		return "openai"
	case FamilyAnthropic:
		return "anthropic"
	case FamilyDeepSeekQwen:
		return "deepseek-qwen"
	case FamilyMetaMistral:
		return "meta-mistral"
	case FamilyTitan:
		return "titan"
	default:
		return "unknown"
	}
}
