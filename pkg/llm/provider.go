package llm

import (
	"context"
)

// Provider defines the interface for interacting with LLM services.
type Provider interface {
	// GenerateText sends a prompt and returns the raw text response.
	GenerateText(ctx context.Context, name, prompt string) (string, error)

	// GenerateImageText sends a prompt plus inline image bytes and returns
	// the raw text response. The response is NOT guaranteed to be valid
	// JSON; callers own any parsing and cleanup.
	GenerateImageText(ctx context.Context, name, prompt string, image []byte, mimeType string) (string, error)

	// HealthCheck verifies that the provider is configured and reachable.
	HealthCheck(ctx context.Context) error
}
