package scrape

import (
	"context"
)

// Update is one official-update entry produced by a source.
type Update struct {
	Source  string `json:"source"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	PubDate string `json:"pubDate,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Source fetches official updates from one external site or feed.
//
// Implementations absorb their own failures: a fetch or parse error yields a
// single sentinel entry instead of an error, so one provider's outage never
// fails the whole aggregation.
type Source interface {
	// Name identifies the source in results and metrics.
	Name() string
	// Fetch returns the source's newest entries, capped at MaxUpdates.
	Fetch(ctx context.Context) []Update
}

// MaxUpdates caps how many entries a single source contributes.
const MaxUpdates = 5

// Sentinel builds the placeholder entry substituted when a source fails.
func Sentinel(source, link string) Update {
	return Update{Source: source, Title: "No recent alerts", Link: link}
}
