package journey

import (
	"storyweave/pkg/model"
)

// FallbackSubject is the subject of the placeholder narrative substituted
// when the generation response fails to parse.
const FallbackSubject = "Unknown Subject"

// Fallback returns the fixed placeholder narrative. The document is fully
// deterministic so malformed generator output always yields the exact same
// journey.
func Fallback() *Narrative {
	return &Narrative{
		Subject:       FallbackSubject,
		Type:          string(model.CategoryOther),
		Description:   "An interesting subject with a story to discover",
		NarrativeText: "This subject has a fascinating history that spans across time and space.",
		Stops: []Stop{
			{
				ID:             "stop1",
				Title:          "Origins",
				Description:    "The beginning",
				Location:       &model.GeoPoint{Name: "Origin Point", Lat: 0, Lng: 0},
				Story:          "Every story has a beginning, and this one starts here.",
				PersonName:     "Founder",
				PersonQuote:    "Innovation begins with a vision.",
				EconomicImpact: "Significant cultural importance",
				Duration:       "Early days",
			},
			{
				ID:             "stop2",
				Title:          "Development",
				Description:    "Growth and evolution",
				Location:       &model.GeoPoint{Name: "Development Phase", Lat: 20, Lng: 20},
				Story:          "Over time, this subject evolved and grew in significance.",
				PersonName:     "Key Figure",
				PersonQuote:    "Progress is inevitable.",
				EconomicImpact: "Growing influence",
				Duration:       "Growth period",
			},
			{
				ID:             "stop3",
				Title:          "Transformation",
				Description:    "A pivotal moment",
				Location:       &model.GeoPoint{Name: "Point of Change", Lat: 30, Lng: 50},
				Story:          "A critical transformation reshaped the trajectory of this story.",
				PersonName:     "Change Agent",
				PersonQuote:    "Change is the only constant.",
				EconomicImpact: "Transformative impact",
				Duration:       "Transitional period",
			},
			{
				ID:             "stop4",
				Title:          "Present Day",
				Description:    "Current state",
				Location:       &model.GeoPoint{Name: "Today", Lat: 40.7128, Lng: -74.0060},
				Story:          "Today, this subject continues to impact our world.",
				PersonName:     "Modern Observer",
				PersonQuote:    "The future is being written now.",
				EconomicImpact: "Ongoing relevance",
				Duration:       "Present",
			},
		},
		StartLocation: model.GeoPoint{Name: "Beginning", Lat: 0, Lng: 0},
		EndLocation:   model.GeoPoint{Name: "Today", Lat: 40.7128, Lng: -74.0060},
	}
}
