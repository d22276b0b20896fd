package geocode

import (
	"disasterhub/core/aggregate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the geocode endpoint into the application.
type Feature struct {
	orchestrator *aggregate.Orchestrator
	extractor    Extractor
	geocoder     Geocoder
	logger       *zap.Logger
}

// NewFeature creates the geocode feature.
func NewFeature(orchestrator *aggregate.Orchestrator, extractor Extractor, geocoder Geocoder, logger *zap.Logger) *Feature {
	return &Feature{orchestrator: orchestrator, extractor: extractor, geocoder: geocoder, logger: logger}
}

// Name identifies the feature.
func (f *Feature) Name() string { return "geocode" }

// IsEnabled reports whether the feature can run.
func (f *Feature) IsEnabled() bool { return f.orchestrator != nil }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	service := NewService(f.orchestrator, f.extractor, f.geocoder, f.logger)
	NewHandler(service).RegisterRoutes(app)
	return nil
}
