package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"storyweave/pkg/config"
	"storyweave/pkg/model"
	"storyweave/pkg/request"
	"storyweave/pkg/tracker"
)

const (
	defaultPexelsBaseURL   = "https://api.pexels.com"
	defaultUnsplashBaseURL = "https://source.unsplash.com"
)

// Client searches stock photo providers with a fixed degradation chain:
// Pexels first, then an Unsplash source redirect, then a static fallback
// image. Search never returns an error as long as a fallback URL is
// configured.
type Client struct {
	http    *request.Client
	tracker *tracker.Tracker
	cfg     config.PhotosConfig

	pexelsBaseURL   string
	unsplashBaseURL string
}

// New creates a photo search client.
func New(httpClient *request.Client, t *tracker.Tracker, cfg config.PhotosConfig) *Client {
	return &Client{
		http:            httpClient,
		tracker:         t,
		cfg:             cfg,
		pexelsBaseURL:   defaultPexelsBaseURL,
		unsplashBaseURL: defaultUnsplashBaseURL,
	}
}

// pexelsResponse is the subset of the Pexels search response we consume.
type pexelsResponse struct {
	Photos []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		Alt          string `json:"alt"`
		Photographer string `json:"photographer"`
		Src          struct {
			Large2x  string `json:"large2x"`
			Large    string `json:"large"`
			Original string `json:"original"`
		} `json:"src"`
	} `json:"photos"`
}

// Search finds one landscape photo for the phrase. Provider failures fall
// through the chain; the returned result's Source names which rung
// answered ("pexels", "unsplash" or "fallback").
func (c *Client) Search(ctx context.Context, phrase string) (*model.ImageResult, error) {
	if c.cfg.PexelsKey != "" {
		if img, err := c.searchPexels(ctx, phrase); err == nil && img != nil {
			return img, nil
		} else if err != nil {
			slog.Warn("Pexels search failed", "phrase", phrase, "error", err)
		}
	}

	if img, err := c.searchUnsplash(ctx, phrase); err == nil {
		return img, nil
	} else {
		slog.Warn("Unsplash redirect failed", "phrase", phrase, "error", err)
	}

	if c.cfg.FallbackURL == "" {
		return nil, fmt.Errorf("no photo provider available for %q", phrase)
	}
	return &model.ImageResult{
		URL:    c.cfg.FallbackURL,
		Width:  1200,
		Height: 800,
		Alt:    phrase,
		Source: "fallback",
	}, nil
}

// ErrorFallback returns the static image handlers serve when the search
// itself blows up. Never nil.
func (c *Client) ErrorFallback(phrase string) *model.ImageResult {
	u := c.cfg.ErrorFallbackURL
	if u == "" {
		u = c.cfg.FallbackURL
	}
	return &model.ImageResult{
		URL:    u,
		Width:  1200,
		Height: 800,
		Alt:    phrase,
		Source: "error-fallback",
	}
}

// searchPexels queries the Pexels search API for a single landscape
// photo. Returns (nil, nil) when the provider answers with zero results.
func (c *Client) searchPexels(ctx context.Context, phrase string) (*model.ImageResult, error) {
	u := fmt.Sprintf("%s/v1/search?query=%s&per_page=1&orientation=landscape",
		c.pexelsBaseURL, url.QueryEscape(phrase))

	headers := map[string]string{"Authorization": c.cfg.PexelsKey}
	body, err := c.http.GetWithHeaders(ctx, u, headers, "pexels:"+phrase)
	if err != nil {
		return nil, err
	}

	var resp pexelsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse pexels response: %w", err)
	}

	if len(resp.Photos) == 0 {
		c.tracker.TrackAPIZero("pexels")
		slog.Debug("Pexels returned no photos", "phrase", phrase)
		return nil, nil
	}

	p := resp.Photos[0]
	imgURL := p.Src.Large2x
	if imgURL == "" {
		imgURL = p.Src.Large
	}
	if imgURL == "" {
		imgURL = p.Src.Original
	}

	return &model.ImageResult{
		URL:          imgURL,
		Width:        p.Width,
		Height:       p.Height,
		Alt:          p.Alt,
		Source:       "pexels",
		Photographer: p.Photographer,
	}, nil
}

// searchUnsplash asks the Unsplash source endpoint for a random photo
// matching the phrase. The endpoint answers with a redirect to the asset;
// we keep the final URL so clients load a stable image.
func (c *Client) searchUnsplash(ctx context.Context, phrase string) (*model.ImageResult, error) {
	// sig busts the endpoint's per-query caching
	u := fmt.Sprintf("%s/1600x900/?%s&sig=%d",
		c.unsplashBaseURL, url.QueryEscape(phrase), time.Now().UnixNano())

	final, err := c.http.ResolveRedirect(ctx, u, nil)
	if err != nil {
		return nil, err
	}

	return &model.ImageResult{
		URL:    final,
		Width:  1600,
		Height: 900,
		Alt:    phrase,
		Source: "unsplash",
	}, nil
}
