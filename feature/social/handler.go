package social

import (
	"strconv"

	"disasterhub/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for social media posts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the social-media route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/disasters/:id<int>/social-media", h.HandleSocialMedia)
}

// HandleSocialMedia returns social media posts for a disaster.
// @Summary Social media posts
// @Description Returns cached or freshly fetched posts for the disaster; fresh fetches broadcast social_media_updated.
// @Tags social
// @Produce json
// @Param id path int true "Disaster ID"
// @Success 200 {object} map[string]interface{} "cached flag plus posts"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /disasters/{id}/social-media [get]
func (h *Handler) HandleSocialMedia(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	disasterID, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	result, err := h.service.Fetch(c.Context(), disasterID)
	if err != nil {
		l.Error("Social media aggregation failed", zap.Int64("disaster_id", disasterID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch social media"})
	}

	body, err := result.Body()
	if err != nil {
		l.Error("Social media payload decode failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch social media"})
	}
	return c.JSON(body)
}
