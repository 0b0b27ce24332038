package journey

import (
	"strings"
)

// queryRule maps a chapter position and optional subject substrings to a
// search phrase. Rules are evaluated in order; the first match wins.
// %s in the phrase is replaced with the lowercased subject.
type queryRule struct {
	position int      // chapter index, lastPosition matches index >= 3
	substrs  []string // any-match against the lowercased subject, nil = always
	phrase   string
}

// lastPosition marks rules covering chapter index 3 and beyond
// (retail/consumption vocabulary).
const lastPosition = 3

// queryRules is the ordered phrase derivation table. Position vocabulary:
// 0 origin/production, 1 processing/manufacturing, 2 packaging/logistics,
// 3+ retail/consumption. A handful of well-known supply chains get
// specialized vocabulary; everything else falls through to the generic
// template for its position.
var queryRules = []queryRule{
	{0, []string{"coffee"}, "coffee plantation harvest picking beans farmers field"},
	{0, []string{"tea"}, "tea plantation field leaves harvest agricultural"},
	{0, []string{"choco", "cacao"}, "cacao farm tropical agriculture harvesting"},
	{0, nil, "%s origin source farmland agricultural workers"},

	{1, []string{"coffee"}, "coffee roasting processing factory industrial machinery"},
	{1, []string{"tea"}, "tea factory processing drying machinery production"},
	{1, nil, "%s factory manufacturing production workshop"},

	{2, []string{"coffee"}, "coffee warehouse bags sacks packaging facility storage"},
	{2, nil, "%s warehouse packaging supply chain logistics center"},

	{lastPosition, []string{"coffee"}, "coffee cafe shop barista espresso brewing serving customers"},
	{lastPosition, nil, "%s retail store consumer purchase market"},
}

// SearchPhrase derives the photo-search phrase for a chapter. This is a
// best-effort positional heuristic, not a semantic classifier.
func SearchPhrase(subject string, index int) string {
	lower := strings.ToLower(strings.TrimSpace(subject))

	pos := index
	if pos < 0 {
		pos = 0
	}
	if pos > lastPosition {
		pos = lastPosition
	}

	for _, rule := range queryRules {
		if rule.position != pos {
			continue
		}
		if !matchesSubject(lower, rule.substrs) {
			continue
		}
		return strings.TrimSpace(strings.ReplaceAll(rule.phrase, "%s", lower))
	}

	// Unreachable while every position has a nil-substrs default
	return lower
}

func matchesSubject(subject string, substrs []string) bool {
	if len(substrs) == 0 {
		return true
	}
	for _, s := range substrs {
		if strings.Contains(subject, s) {
			return true
		}
	}
	return false
}
