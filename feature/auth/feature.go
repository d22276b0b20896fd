package auth

import (
	"disasterhub/core/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the auth endpoints into the application.
type Feature struct {
	db     *gorm.DB
	tokens *token.Service
	logger *zap.Logger
}

// NewFeature creates the auth feature.
func NewFeature(db *gorm.DB, tokens *token.Service, logger *zap.Logger) *Feature {
	return &Feature{db: db, tokens: tokens, logger: logger}
}

// Name identifies the feature.
func (f *Feature) Name() string { return "auth" }

// IsEnabled reports whether the feature can run; it needs the database.
func (f *Feature) IsEnabled() bool { return f.db != nil }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	service := NewService(f.db, f.tokens, f.logger)
	NewHandler(service, f.tokens).RegisterRoutes(app)
	return nil
}
