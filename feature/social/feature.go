package social

import (
	"disasterhub/core/aggregate"
	"disasterhub/core/broadcast"
	"disasterhub/core/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the social-media endpoint into the application.
type Feature struct {
	orchestrator *aggregate.Orchestrator
	provider     PostsProvider
	hub          broadcast.Broadcaster
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewFeature creates the social feature.
func NewFeature(orchestrator *aggregate.Orchestrator, provider PostsProvider, hub broadcast.Broadcaster, m *metrics.Metrics, logger *zap.Logger) *Feature {
	return &Feature{orchestrator: orchestrator, provider: provider, hub: hub, metrics: m, logger: logger}
}

// Name identifies the feature.
func (f *Feature) Name() string { return "social" }

// IsEnabled reports whether the feature can run.
func (f *Feature) IsEnabled() bool { return f.orchestrator != nil && f.provider != nil }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	service := NewService(f.orchestrator, f.provider, f.hub, f.metrics, f.logger)
	NewHandler(service).RegisterRoutes(app)
	return nil
}
