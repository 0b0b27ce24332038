package model

// Category classifies the subject of a journey.
type Category string

const (
	CategoryObject           Category = "object"
	CategoryPlace            Category = "place"
	CategoryPerson           Category = "person"
	CategoryHistoricalMoment Category = "historical_moment"
	CategoryLivingThing      Category = "living_thing"
	CategoryConcept          Category = "concept"
	CategoryOther            Category = "other"
)

// NormalizeCategory coerces unknown or empty category values to "other".
func NormalizeCategory(s string) Category {
	switch Category(s) {
	case CategoryObject, CategoryPlace, CategoryPerson, CategoryHistoricalMoment,
		CategoryLivingThing, CategoryConcept, CategoryOther:
		return Category(s)
	}
	return CategoryOther
}

// GeoPoint is a named coordinate pair. Values come straight from the
// generator and carry no accuracy guarantee; (0,0) is a legal placeholder.
type GeoPoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Route is the start/end pair drawn on the journey map.
type Route struct {
	Start GeoPoint `json:"start"`
	End   GeoPoint `json:"end"`
}

// Chapter is one narrative segment ("stop") of a Journey.
type Chapter struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Story       string    `json:"story"`
	Location    *GeoPoint `json:"location,omitempty"`

	PersonName     string `json:"personName,omitempty"`
	PersonQuote    string `json:"personQuote,omitempty"`
	EconomicImpact string `json:"economicImpact,omitempty"`
	Duration       string `json:"duration,omitempty"`

	// ImageURL is attached during enrichment and stays empty when the
	// photo search fails for this chapter.
	ImageURL string `json:"imageUrl,omitempty"`
}

// Journey is the top-level narrative artifact returned to the client.
// It is built once per upload request and never mutated afterwards.
type Journey struct {
	Subject     string   `json:"subject"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Narrative   string   `json:"narrative"`

	// HeroImageURL is a data URL of the uploaded image, never a
	// generator- or search-provided reference.
	HeroImageURL string `json:"heroImageUrl"`

	Chapters []Chapter `json:"chapters"`
	Route    Route     `json:"route"`

	// EstimatedTotalDistance is informational only (chapters x constant).
	EstimatedTotalDistance string `json:"estimatedTotalDistance"`
}

// ImageResult is the photo-search answer. Source identifies which backing
// provider answered; callers must treat all sources as equally valid.
type ImageResult struct {
	URL          string `json:"url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Alt          string `json:"alt"`
	Source       string `json:"source"`
	Photographer string `json:"photographer,omitempty"`
}

// MusicResult is the music-generation answer. Status "pending" with an
// empty MusicURL is a normal terminal state for the session.
type MusicResult struct {
	MusicURL string `json:"musicUrl,omitempty"`
	ID       string `json:"id,omitempty"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}
