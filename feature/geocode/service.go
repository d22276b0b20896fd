package geocode

import (
	"context"

	"disasterhub/core/aggregate"
	"disasterhub/provider/nominatim"

	"go.uber.org/zap"
)

// Extractor pulls place names out of a disaster description.
type Extractor interface {
	ExtractLocations(ctx context.Context, description string) ([]string, error)
}

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (nominatim.Result, error)
}

// Service resolves free-text disaster descriptions to coordinates: the
// model extracts place names, then each name is geocoded in extraction
// order. Results are cached per description.
type Service struct {
	orchestrator *aggregate.Orchestrator
	extractor    Extractor
	geocoder     Geocoder
	logger       *zap.Logger
}

// NewService creates a new geocode service.
func NewService(orchestrator *aggregate.Orchestrator, extractor Extractor, geocoder Geocoder, logger *zap.Logger) *Service {
	return &Service{orchestrator: orchestrator, extractor: extractor, geocoder: geocoder, logger: logger}
}

// Resolve runs the cached extract-then-geocode aggregation for one
// description. The two providers have a data dependency, so they run
// sequentially: one geocode call per extracted name, in input order. A name
// without a match contributes nil coordinates rather than failing the whole
// aggregation; extraction producing nothing is an error.
func (s *Service) Resolve(ctx context.Context, description string) (aggregate.Result, error) {
	return s.orchestrator.Do(ctx, aggregate.Operation{
		Endpoint: "geocode",
		Key:      "geocode:" + description,
		Fetch: func(ctx context.Context) (any, error) {
			locations, err := s.extractor.ExtractLocations(ctx, description)
			if err != nil {
				return nil, err
			}

			results := make([]nominatim.Result, 0, len(locations))
			for _, loc := range locations {
				geo, err := s.geocoder.Geocode(ctx, loc)
				if err != nil {
					return nil, err
				}
				results = append(results, geo)
			}

			return map[string]any{"extractedLocations": results}, nil
		},
	})
}
