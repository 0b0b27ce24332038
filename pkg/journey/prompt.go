package journey

import (
	"fmt"
)

// analysisPromptTemplate instructs the generator to respond with the exact
// JSON document Normalize expects. %d is the requested chapter count.
const analysisPromptTemplate = `Analyze this image and create a rich, detailed, compelling story about what you see. Focus on the MAIN SUBJECT (product, brand, or item), not background details.

Write like a documentary filmmaker telling an epic story.

Respond with ONLY valid JSON (no markdown, no code blocks):

{
  "subject": "main product/brand name ONLY (e.g., 'Starbucks Coffee', 'iPhone', 'Nike Shoes') - NOT 'coffee cup' or 'phone case'",
  "type": "object|place|person|historical_moment|living_thing|concept|other",
  "description": "3-4 vivid sentences painting a picture of the main subject and its significance in the world today",
  "narrative": "4-6 compelling sentences about the overall journey and story behind this subject",
  "stops": [
    {
      "id": "stop1",
      "title": "evocative chapter title (3-5 words)",
      "description": "2-3 sentences setting the scene for this chapter",
      "location": {"name": "specific location name", "lat": 0.0, "lng": 0.0},
      "story": "3-4 detailed paragraphs (8-12 sentences total) telling this chapter's story with rich details, emotions, struggles, and triumphs",
      "personName": "full name of key historical figure or pioneer",
      "personQuote": "meaningful, impactful quote that captures the essence of this moment",
      "economicImpact": "2-3 sentences about the economic, cultural, or societal significance of this chapter",
      "duration": "specific time period or era (e.g., '1850-1875' or 'The Industrial Revolution')"
    }
  ],
  "startLocation": {"name": "origin", "lat": 0.0, "lng": 0.0},
  "endLocation": {"name": "destination", "lat": 0.0, "lng": 0.0}
}

CRITICAL REQUIREMENTS:
- Create exactly %d dramatic chapters with rich, detailed content
- Each stop's "story" field should be 8-12 sentences
- Use realistic GPS coordinates with decimal precision
- Be SPECIFIC with names, dates, locations, and events
- Focus on the PRODUCT/BRAND name, NOT the physical container or packaging
- Include struggles, innovations, key moments, and turning points
- Make it feel like a cinematic documentary`

// BuildPrompt returns the analysis prompt for the given chapter count.
func BuildPrompt(chapterCount int) string {
	if chapterCount <= 0 {
		chapterCount = 4
	}
	return fmt.Sprintf(analysisPromptTemplate, chapterCount)
}
