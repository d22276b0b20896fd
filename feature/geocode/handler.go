package geocode

import (
	"errors"

	"disasterhub/core/logger"
	"disasterhub/provider/gemini"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for description geocoding.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the geocode route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/geocode", h.HandleGeocode)
}

// HandleGeocode resolves a disaster description to coordinates.
// @Summary Geocode description
// @Description Extracts place names from the description via the language model and geocodes each one. Results are cached per description.
// @Tags geocode
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "cached flag plus extractedLocations"
// @Failure 400 {object} map[string]string "Missing description"
// @Failure 500 {object} map[string]string "Extraction or geocoding failed"
// @Router /geocode [post]
func (h *Handler) HandleGeocode(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req struct {
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil || req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "description required"})
	}

	result, err := h.service.Resolve(c.Context(), req.Description)
	if errors.Is(err, gemini.ErrNoLocations) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Geocode failed", "details": "no locations extracted",
		})
	}
	if err != nil {
		l.Error("Geocode aggregation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Geocode failed"})
	}

	body, err := result.Body()
	if err != nil {
		l.Error("Geocode payload decode failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Geocode failed"})
	}
	return c.JSON(body)
}
