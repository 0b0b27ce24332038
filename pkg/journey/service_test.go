package journey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyweave/pkg/config"
	"storyweave/pkg/llm/mock"
	"storyweave/pkg/model"
)

// stubSearcher implements Searcher with per-phrase scripted failures.
type stubSearcher struct {
	mu      sync.Mutex
	calls   []string
	failAll bool
	failOn  map[string]bool
}

func (s *stubSearcher) Search(ctx context.Context, phrase string) (*model.ImageResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, phrase)

	if s.failAll || s.failOn[phrase] {
		return nil, errors.New("search unavailable")
	}
	return &model.ImageResult{
		URL:    "https://images.example.com/" + strings.ReplaceAll(phrase, " ", "-"),
		Width:  1600,
		Height: 900,
		Alt:    phrase,
		Source: "pexels",
	}, nil
}

func fourStopResponse() string {
	stops := make([]string, 4)
	for i := range stops {
		stops[i] = fmt.Sprintf(`{
			"id": "stop%d", "title": "Chapter %d", "description": "d%d",
			"location": {"name": "Place %d", "lat": %d.0, "lng": %d.0},
			"story": "story %d"}`, i+1, i+1, i+1, i+1, i*10, i*10, i+1)
	}
	return fmt.Sprintf(`{
		"subject": "Colombian Coffee",
		"type": "object",
		"description": "desc",
		"narrative": "narr",
		"stops": [%s],
		"startLocation": {"name": "Huila", "lat": 2.5, "lng": -75.5},
		"endLocation": {"name": "New York", "lat": 40.7, "lng": -74.0}
	}`, strings.Join(stops, ","))
}

func TestAnalyzeImage_HappyPath(t *testing.T) {
	provider := mock.New(fourStopResponse())
	search := &stubSearcher{}
	svc := NewService(provider, search, config.JourneyConfig{ChapterCount: 4, KmPerChapter: 1500})

	j, err := svc.AnalyzeImage(context.Background(), []byte{0xff, 0xd8}, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "Colombian Coffee", j.Subject)
	assert.Equal(t, model.CategoryObject, j.Category)
	assert.Equal(t, "6000 km (estimated)", j.EstimatedTotalDistance)
	assert.True(t, strings.HasPrefix(j.HeroImageURL, "data:image/jpeg;base64,"))
	assert.Equal(t, "Huila", j.Route.Start.Name)
	assert.Equal(t, "New York", j.Route.End.Name)

	require.Len(t, j.Chapters, 4)
	for i, ch := range j.Chapters {
		assert.Equal(t, fmt.Sprintf("stop%d", i+1), ch.ID)
		assert.NotEmpty(t, ch.ImageURL, "chapter %d should carry an image", i)
	}

	// One search per chapter, coffee vocabulary for the first
	assert.Len(t, search.calls, 4)
	assert.Contains(t, search.calls, "coffee plantation harvest picking beans farmers field")
}

func TestAnalyzeImage_RefusalPropagates(t *testing.T) {
	provider := mock.New("I'm sorry, I can't analyze this image.")
	svc := NewService(provider, &stubSearcher{}, config.JourneyConfig{})

	j, err := svc.AnalyzeImage(context.Background(), []byte{1}, "image/jpeg")
	require.Error(t, err)
	assert.Nil(t, j)

	var refused *ContentRefusedError
	require.ErrorAs(t, err, &refused)
	assert.Contains(t, refused.Raw, "I'm sorry")
}

func TestAnalyzeImage_ProviderErrorPropagates(t *testing.T) {
	provider := mock.New("")
	provider.Err = errors.New("network down")
	svc := NewService(provider, &stubSearcher{}, config.JourneyConfig{})

	_, err := svc.AnalyzeImage(context.Background(), []byte{1}, "image/jpeg")
	require.Error(t, err)
	var refused *ContentRefusedError
	assert.False(t, errors.As(err, &refused))
}

func TestAnalyzeImage_MalformedYieldsFallback(t *testing.T) {
	provider := mock.New("here is your story, enjoy! no json though")
	search := &stubSearcher{}
	svc := NewService(provider, search, config.JourneyConfig{ChapterCount: 4, KmPerChapter: 1500})

	j, err := svc.AnalyzeImage(context.Background(), []byte{1}, "image/png")
	require.NoError(t, err)

	assert.Equal(t, FallbackSubject, j.Subject)
	assert.Equal(t, model.CategoryOther, j.Category)
	require.Len(t, j.Chapters, 4)
	assert.Equal(t, "Origins", j.Chapters[0].Title)
	assert.InDelta(t, 40.7128, j.Route.End.Lat, 1e-9)

	// Hero still derived from the upload
	assert.True(t, strings.HasPrefix(j.HeroImageURL, "data:image/png;base64,"))
}

func TestAnalyzeImage_EnrichmentIsolation(t *testing.T) {
	provider := mock.New(fourStopResponse())
	search := &stubSearcher{failOn: map[string]bool{
		"coffee roasting processing factory industrial machinery": true,
	}}
	svc := NewService(provider, search, config.JourneyConfig{ChapterCount: 4})

	j, err := svc.AnalyzeImage(context.Background(), []byte{1}, "image/jpeg")
	require.NoError(t, err)
	require.Len(t, j.Chapters, 4)

	withImage := 0
	for _, ch := range j.Chapters {
		if ch.ImageURL != "" {
			withImage++
		}
	}
	assert.Equal(t, 3, withImage)
	assert.Empty(t, j.Chapters[1].ImageURL)
}

func TestAnalyzeImage_AllEnrichmentFails(t *testing.T) {
	provider := mock.New(fourStopResponse())
	search := &stubSearcher{failAll: true}
	svc := NewService(provider, search, config.JourneyConfig{})

	j, err := svc.AnalyzeImage(context.Background(), []byte{1}, "image/jpeg")
	require.NoError(t, err)
	require.Len(t, j.Chapters, 4)
	for _, ch := range j.Chapters {
		assert.Empty(t, ch.ImageURL)
	}
	assert.NotEmpty(t, j.HeroImageURL)
}

func TestAnalyzeImage_NilSearcherSkipsEnrichment(t *testing.T) {
	provider := mock.New(fourStopResponse())
	svc := NewService(provider, nil, config.JourneyConfig{})

	j, err := svc.AnalyzeImage(context.Background(), []byte{1}, "image/jpeg")
	require.NoError(t, err)
	for _, ch := range j.Chapters {
		assert.Empty(t, ch.ImageURL)
	}
}

func TestAnalyzeImage_AssignsChapterIDs(t *testing.T) {
	raw := `{
		"subject": "Olive Oil",
		"stops": [
			{"title": "Grove", "story": "s"},
			{"id": "keep-me", "title": "Press", "story": "s"}
		]
	}`
	provider := mock.New(raw)
	svc := NewService(provider, nil, config.JourneyConfig{})

	j, err := svc.AnalyzeImage(context.Background(), []byte{1}, "image/jpeg")
	require.NoError(t, err)
	require.Len(t, j.Chapters, 2)
	assert.NotEmpty(t, j.Chapters[0].ID)
	assert.Equal(t, "keep-me", j.Chapters[1].ID)
	assert.NotEqual(t, j.Chapters[0].ID, j.Chapters[1].ID)
}

func TestAnalyzeImage_UnknownMediaTypeDefaultsToJPEG(t *testing.T) {
	provider := mock.New(fourStopResponse())
	svc := NewService(provider, nil, config.JourneyConfig{})

	j, err := svc.AnalyzeImage(context.Background(), []byte{1}, "application/octet-stream")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(j.HeroImageURL, "data:image/jpeg;base64,"))
}
