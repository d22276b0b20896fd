package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"disasterhub/core/metrics"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// DefaultNDMAURL is the National Disaster Management Authority home page.
const DefaultNDMAURL = "https://ndma.gov.in/"

const ndmaSource = "NDMA India"

// keywords an anchor title must contain to count as an alert.
var ndmaKeywords = []string{"alert", "cyclone", "earthquake"}

// NDMA scrapes alert links from the NDMA India home page.
type NDMA struct {
	url     string
	client  *http.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewNDMA wires a scraper for the given page URL. A nil client gets a
// default with a 20s timeout.
func NewNDMA(url string, client *http.Client, m *metrics.Metrics, logger *zap.Logger) *NDMA {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &NDMA{url: url, client: client, metrics: m, logger: logger}
}

// Name identifies the source.
func (n *NDMA) Name() string { return ndmaSource }

// Fetch scrapes the page for alert anchors, in DOM order, capped at
// MaxUpdates. Any failure, and a page with no matching anchors, yields the
// sentinel entry.
func (n *NDMA) Fetch(ctx context.Context) []Update {
	n.metrics.ProviderCall("ndma")

	doc, err := n.fetchDocument(ctx)
	if err != nil {
		n.metrics.ProviderError("ndma")
		n.logger.Warn("NDMA scrape failed", zap.Error(err))
		return []Update{Sentinel(ndmaSource, n.url)}
	}

	var updates []Update
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(updates) >= MaxUpdates {
			return false
		}

		title := strings.TrimSpace(sel.Text())
		href, ok := sel.Attr("href")
		if len(title) <= 10 || !ok || href == "" || !matchesKeyword(title) {
			return true
		}

		if !strings.HasPrefix(href, "http") {
			href = strings.TrimSuffix(n.url, "/") + href
		}
		updates = append(updates, Update{Source: ndmaSource, Title: title, Link: href})
		return true
	})

	if len(updates) == 0 {
		return []Update{Sentinel(ndmaSource, n.url)}
	}
	return updates
}

func (n *NDMA) fetchDocument(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "DisasterHub/1.0")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ndma returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func matchesKeyword(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range ndmaKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
