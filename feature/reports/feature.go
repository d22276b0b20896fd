package reports

import (
	"disasterhub/core/broadcast"
	"disasterhub/core/metrics"
	authmw "disasterhub/core/middleware/auth"
	"disasterhub/core/storage"
	"disasterhub/core/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the report endpoints into the application.
type Feature struct {
	db         *gorm.DB
	hub        broadcast.Broadcaster
	store      storage.Client
	storageCfg storage.Config
	verifier   Verifier
	tokens     *token.Service
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewFeature creates the reports feature.
func NewFeature(db *gorm.DB, hub broadcast.Broadcaster, store storage.Client, storageCfg storage.Config, verifier Verifier, tokens *token.Service, m *metrics.Metrics, logger *zap.Logger) *Feature {
	return &Feature{
		db:         db,
		hub:        hub,
		store:      store,
		storageCfg: storageCfg,
		verifier:   verifier,
		tokens:     tokens,
		metrics:    m,
		logger:     logger,
	}
}

// Name identifies the feature.
func (f *Feature) Name() string { return "reports" }

// IsEnabled reports whether the feature can run; it needs the database.
func (f *Feature) IsEnabled() bool { return f.db != nil }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	service := NewService(f.db, f.hub, f.store, f.storageCfg, f.verifier, f.metrics, f.logger)
	NewHandler(service, authmw.New(f.tokens)).RegisterRoutes(app)
	return nil
}
