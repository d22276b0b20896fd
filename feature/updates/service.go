package updates

import (
	"context"
	"fmt"
	"sync"

	"disasterhub/core/aggregate"
	"disasterhub/provider/scrape"

	"go.uber.org/zap"
)

// Service aggregates official updates from the configured sources, cached
// per disaster.
type Service struct {
	orchestrator *aggregate.Orchestrator
	sources      []scrape.Source
	logger       *zap.Logger
}

// NewService creates a new official-updates service. Source order is the
// merge order of the aggregated result.
func NewService(orchestrator *aggregate.Orchestrator, sources []scrape.Source, logger *zap.Logger) *Service {
	return &Service{orchestrator: orchestrator, sources: sources, logger: logger}
}

// Fetch runs the cached aggregation for one disaster. The sources are
// independent, so they are fetched concurrently and all are awaited; a
// failed source contributes its sentinel entry without disturbing its
// siblings. Merge order is source declaration order, then each source's
// natural order.
func (s *Service) Fetch(ctx context.Context, disasterID int64) (aggregate.Result, error) {
	return s.orchestrator.Do(ctx, aggregate.Operation{
		Endpoint: "official-updates",
		Key:      fmt.Sprintf("official:%d", disasterID),
		Fetch: func(ctx context.Context) (any, error) {
			perSource := make([][]scrape.Update, len(s.sources))

			var wg sync.WaitGroup
			wg.Add(len(s.sources))
			for i, src := range s.sources {
				go func(i int, src scrape.Source) {
					defer wg.Done()
					perSource[i] = src.Fetch(ctx)
				}(i, src)
			}
			wg.Wait()

			var combined []scrape.Update
			for _, updates := range perSource {
				combined = append(combined, updates...)
			}

			return map[string]any{"updates": combined}, nil
		},
	})
}
