package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"disasterhub/core/cache"
	"disasterhub/core/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Operation describes one cache-backed aggregation.
type Operation struct {
	// Endpoint labels the operation in metrics (e.g. "geocode").
	Endpoint string
	// Key is the cache key (e.g. "official:42").
	Key string
	// TTL bounds the cached result's lifetime; zero means cache.DefaultTTL.
	TTL time.Duration
	// Fetch runs the provider fan-out on a cache miss and returns the merged
	// payload. Providers are never invoked on a hit.
	Fetch func(ctx context.Context) (any, error)
	// OnFresh, when set, runs after a fresh fetch has been written through.
	// It never runs on a cache hit, so subscribers are only notified when
	// the underlying data could actually have changed.
	OnFresh func(payload json.RawMessage)
}

// Result is the outcome of an aggregation, tagged with its provenance.
type Result struct {
	// Cached reports whether the payload came from the cache store.
	Cached bool
	// Payload is the merged provider output.
	Payload json.RawMessage
}

// Body renders the result as a response document: the merged payload's
// fields plus the cached provenance flag.
func (r Result) Body() (map[string]any, error) {
	body := make(map[string]any)
	if len(r.Payload) > 0 {
		if err := json.Unmarshal(r.Payload, &body); err != nil {
			return nil, fmt.Errorf("decode aggregated payload: %w", err)
		}
	}
	body["cached"] = r.Cached
	return body, nil
}

// Orchestrator runs cache-backed aggregations: check the cache, on a miss
// fan out to the providers, write the merged result through, and return it
// tagged as cached or fresh. Concurrent misses on one key share a single
// fetch via singleflight.
type Orchestrator struct {
	cache   *cache.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
	sf      singleflight.Group
}

// New creates an orchestrator over the given cache store.
func New(store *cache.Store, m *metrics.Metrics, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{cache: store, metrics: m, logger: logger}
}

// flightOutcome is what one singleflight execution hands back: the payload
// plus whether the double-check found it already written.
type flightOutcome struct {
	payload json.RawMessage
	cached  bool
}

// Do executes the operation.
//
// The cache write-through is best effort: if it fails the fresh result is
// still returned and the failure is only logged.
func (o *Orchestrator) Do(ctx context.Context, op Operation) (Result, error) {
	// Fast path: live cache entry.
	if payload, ok := o.lookup(ctx, op); ok {
		return Result{Cached: true, Payload: payload}, nil
	}

	// Slow path: share one fetch per key across concurrent callers.
	v, err, _ := o.sf.Do(op.Key, func() (any, error) {
		// Double-check after winning the flight; a sibling may have
		// written through while we waited.
		if payload, ok := o.lookup(ctx, op); ok {
			return flightOutcome{payload: payload, cached: true}, nil
		}

		o.metrics.CacheMiss(op.Endpoint)

		merged, err := op.Fetch(ctx)
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(merged)
		if err != nil {
			return nil, fmt.Errorf("encode %s result: %w", op.Endpoint, err)
		}

		if err := o.cache.Put(ctx, op.Key, payload, op.TTL); err != nil {
			o.logger.Warn("Cache write-through failed",
				zap.String("key", op.Key), zap.Error(err))
		}

		if op.OnFresh != nil {
			op.OnFresh(payload)
		}

		return flightOutcome{payload: payload}, nil
	})
	if err != nil {
		return Result{}, err
	}

	out := v.(flightOutcome)
	return Result{Cached: out.cached, Payload: out.payload}, nil
}

func (o *Orchestrator) lookup(ctx context.Context, op Operation) (json.RawMessage, bool) {
	payload, ok, err := o.cache.Get(ctx, op.Key)
	if err != nil {
		// A broken cache read degrades to a miss rather than failing the
		// request.
		o.logger.Warn("Cache read failed", zap.String("key", op.Key), zap.Error(err))
		return nil, false
	}
	if ok {
		o.metrics.CacheHit(op.Endpoint)
	}
	return payload, ok
}
