package ai

import (
	"context"
)

// GenerateParams carries the generation parameters for a single call to
// the external model.
type GenerateParams struct {
	Temperature     float32
	MaxOutputTokens int32
	SystemPrompt    string
}

// Generator is the opaque capability the gateway builds on: one prompt
// in, generated text out. Implementations own transport, auth, and
// fail-fast behavior; the gateway owns prompt construction and response
// normalization.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, params GenerateParams) (string, *TokenUsage, error)
}

// AIProvider extends Generator with the lifecycle and health surface
// the server needs
type AIProvider interface {
	Generator
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}
