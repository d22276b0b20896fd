// Package scrape holds the official-update sources: an HTML scraper for the
// NDMA India home page and an RSS reader for the ReliefWeb updates feed.
//
// These feeds are best-effort. Every source degrades a failure into a single
// sentinel entry instead of returning an error, and contributes at most
// MaxUpdates entries in its natural (DOM or feed) order.
package scrape
