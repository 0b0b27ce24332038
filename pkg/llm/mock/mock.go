// Package mock provides an llm.Provider test double with scriptable
// responses. It is also selectable as the "mock" provider in config for
// offline development.
package mock

import (
	"context"
	"sync"
)

// Provider implements llm.Provider with canned responses.
type Provider struct {
	mu sync.Mutex

	// Response is returned by both generation methods unless Err is set.
	Response string
	Err      error

	// Captured inputs for assertions.
	Prompts   []string
	Images    [][]byte
	MimeTypes []string
}

// New creates a mock provider returning the given response.
func New(response string) *Provider {
	return &Provider{Response: response}
}

func (p *Provider) GenerateText(ctx context.Context, name, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Prompts = append(p.Prompts, prompt)
	if p.Err != nil {
		return "", p.Err
	}
	return p.Response, nil
}

func (p *Provider) GenerateImageText(ctx context.Context, name, prompt string, image []byte, mimeType string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Prompts = append(p.Prompts, prompt)
	p.Images = append(p.Images, image)
	p.MimeTypes = append(p.MimeTypes, mimeType)
	if p.Err != nil {
		return "", p.Err
	}
	return p.Response, nil
}

func (p *Provider) HealthCheck(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Err
}
