package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for resume generation.
type Client interface {
	GenerateResume(ctx context.Context, input GenerateInput) (json.RawMessage, error)
}

// GenerateInput captures the inputs for a generation call. Prompt is the
// user's free-text description; SourceText carries extracted document text on
// the import path and is empty otherwise.
type GenerateInput struct {
	Prompt        string
	SourceText    string
	PromptVersion string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// GenerateResume returns ErrNotImplemented.
func (PlaceholderClient) GenerateResume(ctx context.Context, input GenerateInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
