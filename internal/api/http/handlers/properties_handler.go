package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andreeesz17/inmobiliaria-service/internal/api/dto"
	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
	"github.com/andreeesz17/inmobiliaria-service/internal/repository"
	"github.com/andreeesz17/inmobiliaria-service/internal/service"
	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

// PropertiesHandler manages listing endpoints.
type PropertiesHandler struct {
	service *service.PropertyService
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(propertyService *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{service: propertyService}
}

// Create POST /properties.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	input, err := parsePropertyBody(c)
	if err != nil {
		return err
	}
	property, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": propertyResponse(property)})
}

// Update PUT /properties/:id.
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	input, err := parsePropertyBody(c)
	if err != nil {
		return err
	}
	property, err := h.service.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": propertyResponse(property)})
}

// Delete DELETE /properties/:id.
func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Get GET /properties/:id.
func (h *PropertiesHandler) Get(c *fiber.Ctx) error {
	property, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": propertyResponse(property)})
}

// List GET /properties.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	filter := repository.PropertyFilter{}
	if op := strings.TrimSpace(c.Query("operation")); op != "" {
		filter.Operation = &op
	}
	if raw := c.Query("published"); raw != "" {
		published := raw == "true"
		filter.Published = &published
	}
	filter.Limit, filter.Offset = parsePagination(c)

	properties, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.PropertyResponse, 0, len(properties))
	for i := range properties {
		items = append(items, propertyResponse(&properties[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parsePropertyBody(c *fiber.Ctx) (service.PropertyInput, error) {
	var req dto.PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return service.PropertyInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	return service.PropertyInput{
		Title:       req.Title,
		Address:     req.Address,
		Price:       req.Price,
		Rooms:       req.Rooms,
		Operation:   req.Operation,
		Description: req.Description,
		Published:   req.Published,
		AgentID:     req.AgentID,
	}, nil
}

func propertyResponse(property *domain.Property) dto.PropertyResponse {
	return dto.PropertyResponse{
		ID:          property.ID,
		Title:       property.Title,
		Address:     property.Address,
		Price:       property.Price,
		Rooms:       property.Rooms,
		Operation:   property.Operation,
		Description: property.Description,
		Published:   property.Published,
		AgentID:     property.AgentID,
		CreatedAt:   property.CreatedAt,
		UpdatedAt:   property.UpdatedAt,
	}
}
