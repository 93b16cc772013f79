package core

import "context"

// ModelClient calls the hosted model. Failures are carried inside the
// result, never returned out of band.
type ModelClient interface {
	Invoke(ctx context.Context, modelID, prompt string) InvokeResult
	Ping(ctx context.Context) error
}

// InvokeResult holds either the generated text or the reason there is none.
type InvokeResult struct {
	Text string
	Err  error
}

func (r InvokeResult) Failed() bool {
	return r.Err != nil
}

// Render is what the conversation shows: the reply, or an inline error.
func (r InvokeResult) Render() string {
	if r.Err != nil {
		return "Error calling Bedrock: " + r.Err.Error()
	}
	return r.Text
}

type TokenCounter interface {
	Count(text string) int
}
