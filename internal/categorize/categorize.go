// Package categorize classifies macroeconomic events by keyword
// heuristics into a category, an importance rank, and a market impact
// level. A provider-supplied impact value, when present, overrides the
// heuristic at the adapter boundary.
package categorize

import "strings"

// Classification is the result of classifying one event name.
type Classification struct {
	Category     string
	Importance   int // 1 (low) - 3 (high)
	MarketImpact string
}

// keywordGroup maps a set of name substrings to one classification.
// Groups are tested in order and the first match wins; ordering is a
// deliberate tie-break for names matching multiple groups.
type keywordGroup struct {
	keywords []string
	result   Classification
}

var groups = []keywordGroup{
	{
		keywords: []string{"gdp", "gross domestic"},
		result:   Classification{Category: "gdp", Importance: 3, MarketImpact: "high"},
	},
	{
		keywords: []string{"inflation", "cpi", "ppi", "price index", "pce"},
		result:   Classification{Category: "inflation", Importance: 3, MarketImpact: "high"},
	},
	{
		keywords: []string{"employment", "payroll", "unemployment", "jobless", "jobs"},
		result:   Classification{Category: "employment", Importance: 3, MarketImpact: "high"},
	},
	{
		keywords: []string{"fed", "fomc", "interest rate", "monetary", "central bank"},
		result:   Classification{Category: "monetary_policy", Importance: 3, MarketImpact: "high"},
	},
	{
		keywords: []string{"retail", "consumer", "confidence", "sentiment", "spending"},
		result:   Classification{Category: "consumer", Importance: 2, MarketImpact: "medium"},
	},
	{
		keywords: []string{"manufacturing", "pmi", "industrial", "factory"},
		result:   Classification{Category: "manufacturing", Importance: 2, MarketImpact: "medium"},
	},
	{
		keywords: []string{"housing", "home", "building", "construction", "mortgage"},
		result:   Classification{Category: "housing", Importance: 2, MarketImpact: "medium"},
	},
}

// Classify returns the classification for an event name. Names matching
// no group fall through to {other, 1, low}.
func Classify(eventName string) Classification {
	name := strings.ToLower(eventName)

	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(name, kw) {
				return g.result
			}
		}
	}

	return Classification{Category: "other", Importance: 1, MarketImpact: "low"}
}

// Frequency guesses a release cadence from the event name. GDP prints
// quarterly, rate decisions follow the meeting schedule, everything else
// defaults to monthly.
func Frequency(eventName string) string {
	name := strings.ToLower(eventName)
	switch {
	case strings.Contains(name, "gdp"), strings.Contains(name, "gross domestic"):
		return "quarterly"
	case strings.Contains(name, "rate decision"), strings.Contains(name, "fomc"):
		return "scheduled"
	default:
		return "monthly"
	}
}
