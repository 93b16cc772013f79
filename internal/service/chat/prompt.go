package chat

import "strings"

// Template names the instruction template used for a turn.
type Template string

const (
	TemplatePlain  Template = "plain"
	TemplateMemory Template = "memory"
)

const memoryTemplate = `You are a helpful AI assistant with access to the user's memory.

RELEVANT MEMORY CONTEXT:
{context}

USER MESSAGE: {user_message}

Instructions:
- Use the memory context to provide personalized responses
- Reference past conversations naturally when relevant
- Be conversational and helpful
- If no relevant context exists, respond normally
- Do NOT include any reasoning tags, thinking blocks, or meta-commentary
- Provide your response directly without any <reasoning> or </reasoning> tags
- Just give a natural, conversational response`

const plainTemplate = `You are a helpful AI assistant.

USER MESSAGE: {user_message}

Instructions:
- Respond helpfully and conversationally
- Do NOT include any reasoning tags, thinking blocks, or meta-commentary
- Provide your response directly without any <reasoning> or </reasoning> tags
- Just give a natural, conversational response`

// BuildPrompt picks the memory template when there is retrieved context and
// the plain one otherwise.
func BuildPrompt(memoryContext, message string) (string, Template) {
	if strings.TrimSpace(memoryContext) == "" {
		r := strings.NewReplacer("{user_message}", message)
		return r.Replace(plainTemplate), TemplatePlain
	}
	r := strings.NewReplacer("{context}", memoryContext, "{user_message}", message)
	return r.Replace(memoryTemplate), TemplateMemory
}
