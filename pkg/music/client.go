package music

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storyweave/pkg/config"
	"storyweave/pkg/model"
	"storyweave/pkg/request"
)

// Client asks the Suno API for an instrumental soundtrack matching a
// journey. Generation is asynchronous on the provider side, so a healthy
// answer may still be a pending clip without an audio URL yet.
type Client struct {
	http *request.Client
	cfg  config.MusicConfig

	baseURL string
}

// New creates a music generation client.
func New(httpClient *request.Client, cfg config.MusicConfig) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.suno.ai"
	}
	return &Client{
		http:    httpClient,
		cfg:     cfg,
		baseURL: base,
	}
}

// generateRequest is the Suno custom_generate payload.
type generateRequest struct {
	Prompt           string `json:"prompt"`
	Tags             string `json:"tags"`
	Title            string `json:"title"`
	MakeInstrumental bool   `json:"make_instrumental"`
	WaitAudio        bool   `json:"wait_audio"`
	Mv               string `json:"mv"`
}

// clip is one generated track in the Suno response.
type clip struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	AudioURL string `json:"audio_url"`
}

// Generate requests a soundtrack for the subject. It never fails: when
// the provider is unconfigured or unreachable the result is a pending
// placeholder the UI can poll or ignore.
func (c *Client) Generate(ctx context.Context, subject, narrative string) *model.MusicResult {
	if c.cfg.Token == "" {
		slog.Debug("Music generation skipped, no token configured")
		return pending("Music generation is not configured.")
	}

	payload := generateRequest{
		Prompt:           buildPrompt(subject, narrative),
		Tags:             "cinematic, documentary, orchestral, instrumental",
		Title:            fmt.Sprintf("The Journey of %s", subject),
		MakeInstrumental: true,
		WaitAudio:        false,
		Mv:               c.cfg.Model,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return pending("Music generation request could not be built.")
	}

	headers := map[string]string{"Authorization": "Bearer " + c.cfg.Token}
	resp, err := c.http.PostJSON(ctx, c.baseURL+"/api/custom_generate", body, headers)
	if err != nil {
		slog.Warn("Music generation request failed", "subject", subject, "error", err)
		return pending("Music generation is temporarily unavailable.")
	}

	var clips []clip
	if err := json.Unmarshal(resp, &clips); err != nil || len(clips) == 0 {
		slog.Warn("Music generation response unusable", "subject", subject, "error", err)
		return pending("Music generation returned no tracks.")
	}

	first := clips[0]
	status := first.Status
	if status == "" {
		status = "pending"
	}
	return &model.MusicResult{
		MusicURL: first.AudioURL,
		ID:       first.ID,
		Status:   status,
		Message:  fmt.Sprintf("Soundtrack for %s is %s.", subject, status),
	}
}

func buildPrompt(subject, narrative string) string {
	prompt := fmt.Sprintf("An instrumental cinematic soundtrack for a documentary about the journey of %s, from its origins to the present day.", subject)
	if narrative != "" {
		prompt += " " + narrative
	}
	return prompt
}

func pending(message string) *model.MusicResult {
	return &model.MusicResult{
		ID:      fmt.Sprintf("pending-%d", time.Now().Unix()),
		Status:  "pending",
		Message: message,
	}
}
