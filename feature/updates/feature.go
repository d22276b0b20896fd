package updates

import (
	"disasterhub/core/aggregate"
	"disasterhub/provider/scrape"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the official-updates endpoint into the application.
type Feature struct {
	orchestrator *aggregate.Orchestrator
	sources      []scrape.Source
	logger       *zap.Logger
}

// NewFeature creates the updates feature.
func NewFeature(orchestrator *aggregate.Orchestrator, sources []scrape.Source, logger *zap.Logger) *Feature {
	return &Feature{orchestrator: orchestrator, sources: sources, logger: logger}
}

// Name identifies the feature.
func (f *Feature) Name() string { return "updates" }

// IsEnabled reports whether the feature can run; it needs at least one source.
func (f *Feature) IsEnabled() bool { return f.orchestrator != nil && len(f.sources) > 0 }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	service := NewService(f.orchestrator, f.sources, f.logger)
	NewHandler(service).RegisterRoutes(app)
	return nil
}
