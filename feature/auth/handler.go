package auth

import (
	"errors"
	"strings"

	"disasterhub/core/logger"
	"disasterhub/core/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	service *Service
	tokens  *token.Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, tokens *token.Service) *Handler {
	return &Handler{service: service, tokens: tokens}
}

// RegisterRoutes registers the auth routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/auth")
	group.Post("/login", h.HandleLogin)
	group.Post("/register", h.HandleRegister)
	group.Get("/verify", h.HandleVerify)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleLogin authenticates a user.
// @Summary Log in
// @Description Checks username/password and returns a signed token plus the user's role.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "token and role"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	tok, role, err := h.service.Login(c.Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if err != nil {
		l.Error("Login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
	}

	return c.JSON(fiber.Map{"token": tok, "role": role})
}

// HandleRegister creates a new user account.
// @Summary Register
// @Description Creates a user with one of the roles admin, responder or citizen and returns a token (auto-login).
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "token and username"
// @Failure 400 {object} map[string]string "Invalid role or username taken"
// @Router /auth/register [post]
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	tok, err := h.service.Register(c.Context(), req.Username, req.Password, req.Role)
	switch {
	case errors.Is(err, ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role selected."})
	case errors.Is(err, ErrUsernameTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username already exists"})
	case err != nil:
		l.Error("Registration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Registration failed"})
	}

	return c.JSON(fiber.Map{"token": tok, "username": req.Username})
}

// HandleVerify decodes the bearer token and returns its claims.
// @Summary Verify token
// @Description Returns the decoded claims of the Authorization bearer token.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "user claims"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /auth/verify [get]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	claims, err := h.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	return c.JSON(fiber.Map{"user": claims})
}
