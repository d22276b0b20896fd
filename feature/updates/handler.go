package updates

import (
	"strconv"

	"disasterhub/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for official updates.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the official-updates route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/disasters/:id<int>/official-updates", h.HandleOfficialUpdates)
}

// HandleOfficialUpdates returns scraped official updates for a disaster.
// @Summary Official updates
// @Description Aggregates official updates from government and humanitarian sources, cached per disaster.
// @Tags updates
// @Produce json
// @Param id path int true "Disaster ID"
// @Success 200 {object} map[string]interface{} "cached flag plus updates"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /disasters/{id}/official-updates [get]
func (h *Handler) HandleOfficialUpdates(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	disasterID, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	result, err := h.service.Fetch(c.Context(), disasterID)
	if err != nil {
		l.Error("Official updates aggregation failed", zap.Int64("disaster_id", disasterID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch official updates"})
	}

	body, err := result.Body()
	if err != nil {
		l.Error("Official updates payload decode failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch official updates"})
	}
	return c.JSON(body)
}
