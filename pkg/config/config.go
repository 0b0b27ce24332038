package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	DB      DBConfig      `yaml:"db"`
	Request RequestConfig `yaml:"request"`
	LLM     LLMConfig     `yaml:"llm"`
	Photos  PhotosConfig  `yaml:"photos"`
	Music   MusicConfig   `yaml:"music"`
	Journey JourneyConfig `yaml:"journey"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address   string `yaml:"address"`
	StaticDir string `yaml:"static_dir"` // SPA build output, optional
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
	LLM      LogSettings `yaml:"llm"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"`
}

// RequestConfig holds outbound HTTP request settings.
type RequestConfig struct {
	Timeout Duration      `yaml:"timeout"`
	Backoff BackoffConfig `yaml:"backoff"`
}

// BackoffConfig holds exponential backoff settings.
type BackoffConfig struct {
	BaseDelay Duration `yaml:"base_delay"`
	MaxDelay  Duration `yaml:"max_delay"`
}

// LLMConfig holds settings for the vision/text generation provider.
type LLMConfig struct {
	Provider string            `yaml:"provider"` // "gemini", "mock"
	Model    string            `yaml:"model"`
	Key      string            `yaml:"key"`
	Profiles map[string]string `yaml:"profiles"` // Map of intent -> model
}

// PhotosConfig holds settings for the photo search providers.
type PhotosConfig struct {
	PexelsKey        string `yaml:"pexels_key"`
	FallbackURL      string `yaml:"fallback_url"`       // static image when all providers fail
	ErrorFallbackURL string `yaml:"error_fallback_url"` // static image on unexpected errors
}

// MusicConfig holds settings for the music generation provider.
type MusicConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// JourneyConfig holds settings for journey assembly.
type JourneyConfig struct {
	ChapterCount     int   `yaml:"chapter_count"`       // requested from the generator
	KmPerChapter     int   `yaml:"km_per_chapter"`      // informational distance estimate
	MaxUploadBytes   int64 `yaml:"max_upload_bytes"`    // advisory, 0 = unlimited
	MaxImageEdge     int   `yaml:"max_image_edge"`      // downscale uploads larger than this
	EnrichmentQuorum int   `yaml:"enrichment_parallel"` // 0 = one goroutine per chapter
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:   "localhost:1851",
			StaticDir: "./web/dist",
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  "./logs/requests.log",
				Level: "INFO",
			},
			LLM: LogSettings{
				Path:  "./logs/llm.log",
				Level: "INFO",
			},
		},
		DB: DBConfig{
			Path: "./data/storyweave.db",
		},
		Request: RequestConfig{
			Timeout: Duration(300 * time.Second),
			Backoff: BackoffConfig{
				BaseDelay: Duration(500 * time.Millisecond),
				MaxDelay:  Duration(30 * time.Second),
			},
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash-lite",
			Key:      "",
			Profiles: map[string]string{
				"analysis": "gemini-2.5-flash",
			},
		},
		Photos: PhotosConfig{
			PexelsKey:        "",
			FallbackURL:      "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=1200&h=800&fit=crop&q=80",
			ErrorFallbackURL: "https://images.unsplash.com/photo-1614730321146-b6fa6a46bcb4?w=1200&h=800&fit=crop&q=80",
		},
		Music: MusicConfig{
			Token:   "",
			BaseURL: "https://api.suno.ai",
			Model:   "v4",
		},
		Journey: JourneyConfig{
			ChapterCount: 4,
			KmPerChapter: 1500,
			MaxImageEdge: 1920,
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values. If it
// exists, defaults are merged with the file but never written back, to
// preserve user formatting and comments.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		cfg.applyEnv()
		return cfg, nil
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv fills empty credentials from the environment. File values win.
func (c *Config) applyEnv() {
	if c.LLM.Key == "" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.LLM.Key = key
		}
	}
	if c.Photos.PexelsKey == "" {
		if key := os.Getenv("PEXELS_API_KEY"); key != "" {
			c.Photos.PexelsKey = key
		}
	}
	if c.Music.Token == "" {
		if token := os.Getenv("SUNO_API_TOKEN"); token != "" {
			c.Music.Token = token
		}
	}
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# StoryWeave Configuration
# ------------------------
# Credentials may also be provided via environment:
#   GEMINI_API_KEY, PEXELS_API_KEY, SUNO_API_TOKEN
# Duration units: ns, us, ms, s, m, h, d (day), w (week)

`)
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
