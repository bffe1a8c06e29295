package llm

import (
	"context"
	"errors"
)

// Client is the opaque AI completion capability: one prompt string in, one
// generated text out. Implementations are stateless between calls
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrMalformedResponse reports a success payload from the AI service that is
// missing the expected candidate text. This is a distinct failure mode from
// an explicit upstream error payload
var ErrMalformedResponse = errors.New("malformed AI response")
