// Package metrics exposes Prometheus counters for the cache and provider
// pipeline: hits and misses per aggregation endpoint, calls and failures per
// provider, and published change events per topic. Served at /metrics.
package metrics
