package llm

import "context"

// ModelClient produces a text completion for a prompt. Implementations
// wrap a remote generative model; failures surface as UPSTREAM_MODEL_ERROR.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
