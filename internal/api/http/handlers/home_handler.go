package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
)

// HomeHandler serves the authenticated landing areas.
type HomeHandler struct{}

// NewHomeHandler constructs handler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home GET /home redirects to the principal's own landing page. This is
// where role-denied navigations land, so it must be reachable by every
// authenticated role.
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)
	return c.Redirect(auth.LandingPath(principal.Role), fiber.StatusFound)
}

// Landing GET /admin, /agent, /user.
func (h *HomeHandler) Landing(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)
	return c.JSON(fiber.Map{"data": fiber.Map{
		"role":     strings.ToLower(principal.Role),
		"username": principal.Username,
	}})
}
