package resources

import (
	"disasterhub/core/broadcast"
	"disasterhub/core/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the resource endpoints into the application.
type Feature struct {
	db      *gorm.DB
	hub     broadcast.Broadcaster
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewFeature creates the resources feature.
func NewFeature(db *gorm.DB, hub broadcast.Broadcaster, m *metrics.Metrics, logger *zap.Logger) *Feature {
	return &Feature{db: db, hub: hub, metrics: m, logger: logger}
}

// Name identifies the feature.
func (f *Feature) Name() string { return "resources" }

// IsEnabled reports whether the feature can run; it needs the database.
func (f *Feature) IsEnabled() bool { return f.db != nil }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	service := NewService(f.db, f.hub, f.metrics, f.logger)
	NewHandler(service).RegisterRoutes(app)
	return nil
}
