package scrape

import (
	"context"
	"net/http"
	"time"

	"disasterhub/core/metrics"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

// DefaultReliefWebURL is the ReliefWeb latest-updates RSS feed.
const DefaultReliefWebURL = "https://reliefweb.int/updates/rss.xml"

const reliefWebSource = "ReliefWeb"

// ReliefWeb reads the ReliefWeb RSS feed of humanitarian updates.
type ReliefWeb struct {
	url     string
	parser  *gofeed.Parser
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewReliefWeb wires a feed reader for the given feed URL. A nil client
// gets a default with a 20s timeout.
func NewReliefWeb(url string, client *http.Client, m *metrics.Metrics, logger *zap.Logger) *ReliefWeb {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	return &ReliefWeb{url: url, parser: parser, metrics: m, logger: logger}
}

// Name identifies the source.
func (r *ReliefWeb) Name() string { return reliefWebSource }

// Fetch returns the feed's newest items in feed order, capped at MaxUpdates.
// Any failure yields the sentinel entry.
func (r *ReliefWeb) Fetch(ctx context.Context) []Update {
	r.metrics.ProviderCall("reliefweb")

	feed, err := r.parser.ParseURLWithContext(r.url, ctx)
	if err != nil {
		r.metrics.ProviderError("reliefweb")
		r.logger.Warn("ReliefWeb feed fetch failed", zap.Error(err))
		return []Update{Sentinel(reliefWebSource, r.url)}
	}

	var updates []Update
	for _, item := range feed.Items {
		if len(updates) >= MaxUpdates {
			break
		}
		update := Update{
			Source:  reliefWebSource,
			Title:   item.Title,
			Link:    item.Link,
			Summary: item.Description,
		}
		if item.PublishedParsed != nil {
			update.PubDate = item.PublishedParsed.UTC().Format(time.RFC3339)
		}
		updates = append(updates, update)
	}

	if len(updates) == 0 {
		return []Update{Sentinel(reliefWebSource, r.url)}
	}
	return updates
}
