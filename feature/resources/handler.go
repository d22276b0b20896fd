package resources

import (
	"errors"
	"strconv"

	"disasterhub/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for resources.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the resource routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/resources")
	group.Get("/all", h.HandleListAll)
	group.Get("/:id<int>/resources", h.HandleNearby)
	group.Post("/", h.HandleCreate)
	group.Delete("/:id<int>", h.HandleDelete)
}

// HandleNearby returns resources near a point for one disaster.
// @Summary Nearby resources
// @Description Resources within 10km of the given point, filtered to the disaster, via the get_nearby_resources procedure.
// @Tags resources
// @Produce json
// @Param id path int true "Disaster ID"
// @Param lat query number true "Center latitude"
// @Param lon query number true "Center longitude"
// @Success 200 {array} ResourceWithCoords
// @Failure 400 {object} map[string]string "Missing coordinates"
// @Router /resources/{id}/resources [get]
func (h *Handler) HandleNearby(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if c.Query("lat") == "" || c.Query("lon") == "" || latErr != nil || lonErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lat and lon query params are required"})
	}

	disasterID, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	rows, err := h.service.Nearby(c.Context(), disasterID, lat, lon)
	if err != nil {
		l.Error("Nearby resource query failed", zap.Int64("disaster_id", disasterID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch nearby resources"})
	}
	return c.JSON(rows)
}

// HandleListAll returns all resources with parsed coordinates.
// @Summary List all resources
// @Tags resources
// @Produce json
// @Success 200 {array} ResourceWithCoords
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /resources/all [get]
func (h *Handler) HandleListAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	rows, err := h.service.ListAll(c.Context())
	if err != nil {
		l.Error("Listing resources failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch resources"})
	}
	return c.JSON(rows)
}

// HandleCreate creates a resource at the given coordinates.
// @Summary Create resource
// @Description Persists a resource with a point location and broadcasts resource_updated.
// @Tags resources
// @Accept json
// @Produce json
// @Param resource body Input true "Resource fields"
// @Success 201 {object} Resource
// @Failure 400 {object} map[string]string "Missing required fields"
// @Router /resources [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if in.DisasterID == 0 || in.Title == "" || in.Type == "" || in.Latitude == nil || in.Longitude == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	resource, err := h.service.Create(c.Context(), in)
	if err != nil {
		l.Error("Creating resource failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create resource"})
	}
	return c.Status(fiber.StatusCreated).JSON(resource)
}

// HandleDelete removes a resource.
// @Summary Delete resource
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} map[string]interface{} "Deletion confirmation"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /resources/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	err := h.service.Delete(c.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}
	if err != nil {
		l.Error("Deleting resource failed", zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete resource"})
	}
	return c.JSON(fiber.Map{"message": "Resource deleted", "id": id})
}
