package journey

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"storyweave/pkg/config"
	"storyweave/pkg/llm"
	"storyweave/pkg/llm/imageutil"
	"storyweave/pkg/model"
)

// Searcher finds one representative photo for a free-text phrase.
// Implementations must be best-effort; an error only affects the chapter
// that requested it.
type Searcher interface {
	Search(ctx context.Context, phrase string) (*model.ImageResult, error)
}

// Service runs the analysis pipeline: generation, normalization,
// per-chapter enrichment, and assembly.
type Service struct {
	provider llm.Provider
	photos   Searcher
	cfg      config.JourneyConfig
}

// NewService creates a new journey Service. photos may be nil, in which
// case enrichment is skipped entirely.
func NewService(provider llm.Provider, photos Searcher, cfg config.JourneyConfig) *Service {
	if cfg.ChapterCount <= 0 {
		cfg.ChapterCount = 4
	}
	if cfg.KmPerChapter <= 0 {
		cfg.KmPerChapter = 1500
	}
	return &Service{
		provider: provider,
		photos:   photos,
		cfg:      cfg,
	}
}

// AnalyzeImage turns an uploaded image into a complete Journey.
//
// The only error conditions are a provider transport failure and an
// explicit content refusal (*ContentRefusedError). Malformed generator
// output is replaced with the fixed fallback narrative, and enrichment
// failures degrade to chapters without images.
func (s *Service) AnalyzeImage(ctx context.Context, data []byte, declaredType string) (*model.Journey, error) {
	mediaType := imageutil.NormalizeMediaType(declaredType)

	prepared, preparedType := imageutil.PrepareUpload(data, mediaType, s.cfg.MaxImageEdge)

	raw, err := s.provider.GenerateImageText(ctx, "analysis", BuildPrompt(s.cfg.ChapterCount), prepared, preparedType)
	if err != nil {
		return nil, fmt.Errorf("image analysis failed: %w", err)
	}

	doc, err := Normalize(raw)
	if err != nil {
		var refused *ContentRefusedError
		if errors.As(err, &refused) {
			slog.Warn("Generation provider refused image", "response_len", len(refused.Raw))
			return nil, err
		}

		slog.Warn("Narrative response malformed, substituting fallback", "error", err)
		doc = Fallback()
	}

	enrichments := s.enrich(ctx, doc)

	// Hero image always comes from the upload, never from the provider.
	hero := "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)

	return s.assemble(doc, enrichments, hero), nil
}

// enrichment is the per-chapter photo search outcome.
type enrichment struct {
	url string
	err error
}

// enrich fans out one photo search per chapter and joins on all of them.
// Failures are isolated: a failed search leaves its slot's url empty and
// never cancels sibling lookups.
func (s *Service) enrich(ctx context.Context, doc *Narrative) []enrichment {
	results := make([]enrichment, len(doc.Stops))
	if s.photos == nil {
		return results
	}

	var wg sync.WaitGroup
	for i := range doc.Stops {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			phrase := SearchPhrase(doc.Subject, i)
			img, err := s.photos.Search(ctx, phrase)
			if err != nil {
				slog.Warn("Chapter enrichment failed", "chapter", i, "phrase", phrase, "error", err)
				results[i] = enrichment{err: err}
				return
			}
			slog.Debug("Chapter enriched", "chapter", i, "phrase", phrase, "source", img.Source)
			results[i] = enrichment{url: img.URL}
		}(i)
	}
	wg.Wait()

	return results
}

// assemble merges the narrative and enrichment results into the final
// Journey. Pure merge, no error conditions.
func (s *Service) assemble(doc *Narrative, enrichments []enrichment, heroImageURL string) *model.Journey {
	chapters := make([]model.Chapter, len(doc.Stops))
	for i, stop := range doc.Stops {
		id := stop.ID
		if id == "" {
			id = uuid.NewString()
		}

		ch := model.Chapter{
			ID:             id,
			Title:          stop.Title,
			Description:    stop.Description,
			Story:          stop.Story,
			Location:       stop.Location,
			PersonName:     stop.PersonName,
			PersonQuote:    stop.PersonQuote,
			EconomicImpact: stop.EconomicImpact,
			Duration:       stop.Duration,
		}
		if i < len(enrichments) && enrichments[i].err == nil {
			ch.ImageURL = enrichments[i].url
		}
		chapters[i] = ch
	}

	start := orb.Point{doc.StartLocation.Lng, doc.StartLocation.Lat}
	end := orb.Point{doc.EndLocation.Lng, doc.EndLocation.Lat}
	slog.Debug("Route assembled",
		"subject", doc.Subject,
		"chapters", len(chapters),
		"geodesic_km", int(geo.DistanceHaversine(start, end)/1000))

	return &model.Journey{
		Subject:                doc.Subject,
		Category:               model.NormalizeCategory(doc.Type),
		Description:            doc.Description,
		Narrative:              doc.NarrativeText,
		HeroImageURL:           heroImageURL,
		Chapters:               chapters,
		Route:                  model.Route{Start: doc.StartLocation, End: doc.EndLocation},
		EstimatedTotalDistance: fmt.Sprintf("%d km (estimated)", len(chapters)*s.cfg.KmPerChapter),
	}
}
