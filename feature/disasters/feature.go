package disasters

import (
	"disasterhub/core/broadcast"
	"disasterhub/core/metrics"
	authmw "disasterhub/core/middleware/auth"
	"disasterhub/core/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the disaster endpoints into the application.
type Feature struct {
	db       *gorm.DB
	geocoder Geocoder
	hub      broadcast.Broadcaster
	tokens   *token.Service
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewFeature creates the disasters feature.
func NewFeature(db *gorm.DB, geocoder Geocoder, hub broadcast.Broadcaster, tokens *token.Service, m *metrics.Metrics, logger *zap.Logger) *Feature {
	return &Feature{db: db, geocoder: geocoder, hub: hub, tokens: tokens, metrics: m, logger: logger}
}

// Name identifies the feature.
func (f *Feature) Name() string { return "disasters" }

// IsEnabled reports whether the feature can run; it needs the database.
func (f *Feature) IsEnabled() bool { return f.db != nil }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	service := NewService(f.db, f.geocoder, f.hub, f.metrics, f.logger)
	handler := NewHandler(service, authmw.New(f.tokens), authmw.RequireRole("admin"))
	handler.RegisterRoutes(app)
	return nil
}
