package disasters

import (
	"errors"
	"strconv"

	"disasterhub/core/logger"
	authmw "disasterhub/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for disasters.
type Handler struct {
	service  *Service
	requires fiber.Handler // bearer auth
	admin    fiber.Handler // admin role gate
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, requireAuth, requireAdmin fiber.Handler) *Handler {
	return &Handler{service: service, requires: requireAuth, admin: requireAdmin}
}

// RegisterRoutes registers the disaster routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/disasters")
	group.Get("/", h.HandleList)
	group.Get("/:id<int>", h.HandleGet)
	group.Post("/", h.requires, h.HandleCreate)
	group.Put("/:id<int>", h.requires, h.HandleUpdate)
	group.Delete("/:id<int>", h.requires, h.admin, h.HandleDelete)
}

// HandleList returns all disasters with parsed coordinates.
// @Summary List disasters
// @Description Returns all disasters with lat/lon parsed from the geography column.
// @Tags disasters
// @Produce json
// @Success 200 {array} DisasterWithCoords
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /disasters [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	rows, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Listing disasters failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	return c.JSON(rows)
}

// HandleGet returns one disaster by id.
// @Summary Get disaster
// @Tags disasters
// @Produce json
// @Param id path int true "Disaster ID"
// @Success 200 {object} Disaster
// @Failure 404 {object} map[string]string "Not Found"
// @Router /disasters/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	disaster, err := h.service.Get(c.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Disaster not found"})
	}
	if err != nil {
		l.Error("Fetching disaster failed", zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	return c.JSON(disaster)
}

// HandleCreate creates a disaster with a geocoded point location.
// @Summary Create disaster
// @Description Geocodes location_name, persists the disaster and broadcasts disaster_updated.
// @Tags disasters
// @Accept json
// @Produce json
// @Param disaster body Input true "Disaster fields"
// @Success 201 {object} Disaster
// @Failure 400 {object} map[string]string "Geocoding failed"
// @Security BearerAuth
// @Router /disasters [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user := authmw.UserFrom(c)
	disaster, err := h.service.Create(c.Context(), in, user.UserID)
	if errors.Is(err, ErrGeocode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not geocode location"})
	}
	if err != nil {
		l.Error("Creating disaster failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(disaster)
}

// HandleUpdate rewrites a disaster, re-geocoding its location.
// @Summary Update disaster
// @Tags disasters
// @Accept json
// @Produce json
// @Param id path int true "Disaster ID"
// @Param disaster body Input true "Disaster fields"
// @Success 200 {object} Disaster
// @Failure 400 {object} map[string]string "Geocoding failed"
// @Failure 404 {object} map[string]string "Not Found"
// @Security BearerAuth
// @Router /disasters/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user := authmw.UserFrom(c)
	disaster, err := h.service.Update(c.Context(), id, in, user.UserID)
	switch {
	case errors.Is(err, ErrGeocode):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not geocode location"})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Disaster not found"})
	case err != nil:
		l.Error("Updating disaster failed", zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.JSON(disaster)
}

// HandleDelete removes a disaster. Admin only.
// @Summary Delete disaster
// @Tags disasters
// @Produce json
// @Param id path int true "Disaster ID"
// @Success 200 {object} map[string]interface{} "Deletion confirmation"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Security BearerAuth
// @Router /disasters/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	err := h.service.Delete(c.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Disaster not found"})
	}
	if err != nil {
		l.Error("Deleting disaster failed", zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.JSON(fiber.Map{"message": "Disaster deleted", "id": id})
}
