package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andreeesz17/inmobiliaria-service/internal/api/dto"
	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
	"github.com/andreeesz17/inmobiliaria-service/internal/service"
	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

// AuthHandler manages login and logout endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, expiresAt, err := h.service.Login(c.UserContext(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}})
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Session GET /auth/session reflects the derived principal, useful for
// clients restoring their view after a reload.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)
	resp := dto.SessionResponse{
		Authenticated: principal.Authenticated,
		Role:          strings.ToLower(principal.Role),
		Username:      principal.Username,
	}
	if principal.Authenticated {
		resp.Landing = auth.LandingPath(principal.Role)
	}
	return c.JSON(fiber.Map{"data": resp})
}
