package journey

import (
	"encoding/json"
	"fmt"
	"strings"

	"storyweave/pkg/model"
)

// Narrative mirrors the JSON document requested from the generation
// provider. It is the intermediate shape between the raw LLM response and
// the assembled Journey.
type Narrative struct {
	Subject       string         `json:"subject"`
	Type          string         `json:"type"`
	Description   string         `json:"description"`
	NarrativeText string         `json:"narrative"`
	Stops         []Stop         `json:"stops"`
	StartLocation model.GeoPoint `json:"startLocation"`
	EndLocation   model.GeoPoint `json:"endLocation"`
}

// Stop is one chapter as produced by the generator.
type Stop struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Location       *model.GeoPoint `json:"location"`
	Story          string          `json:"story"`
	PersonName     string          `json:"personName"`
	PersonQuote    string          `json:"personQuote"`
	EconomicImpact string          `json:"economicImpact"`
	Duration       string          `json:"duration"`
}

// refusalMarkers are scanned case-insensitively in the raw response before
// any cleanup. A match means the provider declined the image.
var refusalMarkers = []string{
	"i'm sorry",
	"i cannot",
	"i can't",
}

// Normalize turns the raw generation response into a validated Narrative.
//
// The contract is total: the result is either a well-formed Narrative, a
// *ContentRefusedError (the provider declined; must propagate to the user),
// or an error wrapping ErrMalformedResponse (callers substitute Fallback()).
// A partially-populated document is never returned.
func Normalize(raw string) (*Narrative, error) {
	lower := strings.ToLower(raw)
	for _, marker := range refusalMarkers {
		if strings.Contains(lower, marker) {
			return nil, &ContentRefusedError{Raw: raw}
		}
	}

	cleaned := stripFences(raw)

	var doc Narrative
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if doc.Subject == "" || len(doc.Stops) == 0 {
		return nil, fmt.Errorf("%w: missing subject or stops", ErrMalformedResponse)
	}

	return &doc, nil
}

// stripFences removes surrounding Markdown code fences (```json or bare
// ```) and whitespace from the response text.
func stripFences(text string) string {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "```json")
	if start != -1 {
		text = text[start+len("```json"):]
		if end := strings.LastIndex(text, "```"); end != -1 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	}

	start = strings.Index(text, "```")
	if start != -1 {
		text = text[start+len("```"):]
		if end := strings.LastIndex(text, "```"); end != -1 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	}

	return text
}
