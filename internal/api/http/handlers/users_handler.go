package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andreeesz17/inmobiliaria-service/internal/api/dto"
	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
	"github.com/andreeesz17/inmobiliaria-service/internal/service"
)

// UsersHandler serves the user and agent directories.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// ListUsers GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	users, err := h.service.ListUsers(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userSummaries(users)})
}

// ListAgents GET /agents.
func (h *UsersHandler) ListAgents(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	agents, err := h.service.ListAgents(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userSummaries(agents)})
}

func userSummaries(users []domain.User) []dto.UserSummary {
	items := make([]dto.UserSummary, 0, len(users))
	for _, user := range users {
		items = append(items, dto.UserSummary{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			Status:    user.Status,
			CreatedAt: user.CreatedAt,
		})
	}
	return items
}
