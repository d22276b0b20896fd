package reports

import (
	"errors"
	"io"

	"disasterhub/core/logger"
	authmw "disasterhub/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reports and image verification.
type Handler struct {
	service  *Service
	requires fiber.Handler // bearer auth
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, requireAuth fiber.Handler) *Handler {
	return &Handler{service: service, requires: requireAuth}
}

// RegisterRoutes registers the report routes under the disasters group the
// UI expects.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/disasters")
	group.Post("/report", h.requires, h.HandleCreate)
	group.Get("/list/Report", h.HandleList)
	group.Post("/report/image", h.requires, h.HandleUploadImage)
	group.Post("/verify-image", h.HandleVerifyImage)
}

// HandleCreate submits a citizen report.
// @Summary Submit report
// @Description Persists a report and broadcasts report_updated.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body Input true "Report fields"
// @Success 201 {object} Report
// @Failure 400 {object} map[string]string "Missing required fields"
// @Security BearerAuth
// @Router /disasters/report [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if in.DisasterID == 0 || in.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	user := authmw.UserFrom(c)
	report, err := h.service.Create(c.Context(), in, user.UserID)
	if err != nil {
		l.Error("Creating report failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit report"})
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// HandleList returns reports, newest first.
// @Summary List reports
// @Tags reports
// @Produce json
// @Param status query string false "Filter by verification status"
// @Success 200 {array} Report
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /disasters/list/Report [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	rows, err := h.service.List(c.Context(), c.Query("status"))
	if err != nil {
		l.Error("Listing reports failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reports"})
	}
	return c.JSON(rows)
}

// HandleUploadImage stores a report image and returns its URL.
// @Summary Upload report image
// @Description Stores the uploaded image in the object store and returns its public URL.
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 201 {object} map[string]string "image_url"
// @Failure 400 {object} map[string]string "Not an image"
// @Security BearerAuth
// @Router /disasters/report/image [post]
func (h *Handler) HandleUploadImage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing image file"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unreadable image file"})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unreadable image file"})
	}

	url, err := h.service.UploadImage(c.Context(), content)
	if errors.Is(err, ErrNotImage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is not a valid image"})
	}
	if err != nil {
		l.Error("Image upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store image"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"image_url": url})
}

// HandleVerifyImage checks a report image with the vision model.
// @Summary Verify image
// @Description Fetches the image, validates it is image content and asks the vision model for a Verified/Rejected/Unknown verdict.
// @Tags reports
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "analysis"
// @Failure 400 {object} map[string]string "Missing or non-image URL"
// @Router /disasters/verify-image [post]
func (h *Handler) HandleVerifyImage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req struct {
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil || req.ImageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing image_url"})
	}

	verdict, err := h.service.VerifyImage(c.Context(), req.ImageURL)
	if errors.Is(err, ErrNotImage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "URL does not point to a valid image"})
	}
	if err != nil {
		l.Error("Image verification failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Image verification failed"})
	}

	return c.JSON(fiber.Map{"analysis": verdict})
}
