package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/iterator"
	"google.golang.org/genai"

	"storyweave/pkg/config"
	"storyweave/pkg/tracker"
)

// Client implements llm.Provider for Google Gemini.
type Client struct {
	genaiClient *genai.Client
	apiKey      string
	modelName   string
	profiles    map[string]string // Map intent -> modelName
	tracker     *tracker.Tracker
	logPath     string

	mu sync.RWMutex
}

// NewClient creates a new Gemini client.
func NewClient(cfg config.LLMConfig, logPath string, t *tracker.Tracker) (*Client, error) {
	c := &Client{tracker: t, logPath: logPath}
	if err := c.Configure(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Configure updates the client with new settings.
func (c *Client) Configure(cfg config.LLMConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apiKey = cfg.Key
	c.modelName = cfg.Model
	c.profiles = cfg.Profiles

	if c.modelName == "" {
		c.modelName = "gemini-2.5-flash-lite"
	}

	if c.apiKey == "" {
		// Can't initialize without key.
		c.genaiClient = nil
		return nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: c.apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create genai client: %w", err)
	}
	c.genaiClient = client

	// Validate model availability. We do NOT fail here, to allow startup
	// even if the API is flaky or rate-limited; a truly invalid key/model
	// will surface on the first generation call.
	if err := c.validateModel(context.Background()); err != nil {
		slog.Warn("Gemini model validation failed (proceeding anyway)", "error", err)
	}

	return nil
}

// Close cleans up resources.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.genaiClient = nil
}

// GenerateText sends a prompt and returns the raw text response.
func (c *Client) GenerateText(ctx context.Context, name, prompt string) (string, error) {
	c.mu.RLock()
	client := c.genaiClient
	c.mu.RUnlock()

	if client == nil {
		return "", fmt.Errorf("gemini client not configured")
	}

	modelName := c.resolveModel(name)

	resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), nil)
	if err != nil {
		c.logPrompt(name, prompt, fmt.Sprintf("ERROR: %v", err))
		if c.tracker != nil {
			c.tracker.TrackAPIFailure("gemini")
		}
		return "", fmt.Errorf("generate text error: %w", err)
	}

	text, err := getResponseText(resp)
	if err != nil {
		c.logPrompt(name, prompt, fmt.Sprintf("TEXT_PARSE_ERROR: %v", err))
		if c.tracker != nil {
			c.tracker.TrackAPIFailure("gemini")
		}
		return "", err
	}

	c.logPrompt(name, prompt, text)
	if c.tracker != nil {
		c.tracker.TrackAPISuccess("gemini")
	}
	return text, nil
}

// GenerateImageText sends a prompt plus inline image bytes and returns the
// raw text response.
func (c *Client) GenerateImageText(ctx context.Context, name, prompt string, image []byte, mimeType string) (string, error) {
	c.mu.RLock()
	client := c.genaiClient
	c.mu.RUnlock()

	if client == nil {
		return "", fmt.Errorf("gemini client not configured")
	}

	modelName := c.resolveModel(name)

	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{Data: image, MIMEType: mimeType}},
				{Text: prompt},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, modelName, contents, nil)
	if err != nil {
		c.logPrompt(name, prompt, fmt.Sprintf("ERROR: %v", err))
		if c.tracker != nil {
			c.tracker.TrackAPIFailure("gemini")
		}
		return "", fmt.Errorf("generate image text error: %w", err)
	}

	text, err := getResponseText(resp)
	if err != nil {
		c.logPrompt(name, prompt, fmt.Sprintf("TEXT_PARSE_ERROR: %v", err))
		if c.tracker != nil {
			c.tracker.TrackAPIFailure("gemini")
		}
		return "", err
	}

	c.logPrompt(name, prompt, text)
	if c.tracker != nil {
		c.tracker.TrackAPISuccess("gemini")
	}
	return text, nil
}

// HealthCheck verifies that the provider is configured.
func (c *Client) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.apiKey == "" {
		return fmt.Errorf("gemini api key not configured")
	}
	if c.genaiClient == nil {
		return fmt.Errorf("gemini client not initialized")
	}
	return nil
}

// resolveModel returns the target model name for the given intent.
func (c *Client) resolveModel(intent string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if profileModel, ok := c.profiles[intent]; ok && profileModel != "" {
		return profileModel
	}
	return c.modelName
}

func (c *Client) logPrompt(name, prompt, response string) {
	if c.logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
		return
	}

	f, err := os.OpenFile(c.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("[%s] PROMPT: %s\nPROMPT_TEXT:\n%s\n\nRESPONSE:\n%s\n%s\n",
		timestamp, name, prompt, response, strings.Repeat("-", 80))

	_, _ = f.WriteString(entry)
}

func getResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// validateModel checks if the configured model is available for the API key.
func (c *Client) validateModel(ctx context.Context) error {
	// Ensure model name has 'models/' prefix
	name := c.modelName
	if !strings.HasPrefix(name, "models/") {
		name = "models/" + name
	}

	// Try to get the specific model (1 API call)
	_, err := c.genaiClient.Models.Get(ctx, name, nil)
	if err == nil {
		slog.Debug("Gemini model validation success", "model", c.modelName)
		return nil
	}

	slog.Warn("Gemini model validation failed, fetching available models...", "model", c.modelName, "error", err)

	iter, listErr := c.genaiClient.Models.List(ctx, nil)
	if listErr != nil {
		slog.Warn("Failed to list models for recovery", "error", listErr)
		return nil // Proceed anyway
	}

	var availableModels []string
	for {
		resp, nextErr := iter.Next(ctx)
		if nextErr == iterator.Done {
			break
		}
		if nextErr != nil {
			break
		}
		if strings.Contains(strings.ToLower(resp.Name), "gemini") {
			availableModels = append(availableModels, resp.Name)
		}
	}

	slog.Error("Configured model not found", "configured", c.modelName)
	slog.Error("Available 'gemini' models for this key:")
	for _, m := range availableModels {
		slog.Error("- " + m)
	}

	return nil // Proceed anyway (lazy validation on generation)
}
