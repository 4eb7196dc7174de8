package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andreeesz17/inmobiliaria-service/internal/api/dto"
	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
	"github.com/andreeesz17/inmobiliaria-service/internal/repository"
	"github.com/andreeesz17/inmobiliaria-service/internal/service"
	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

// RequestsHandler manages inquiry endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// Submit POST /requests.
func (h *RequestsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Submit(c.UserContext(), auth.PrincipalFromContext(c), service.SubmitInput{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Address:     req.Address,
		Price:       req.Price,
		Rooms:       req.Rooms,
		Operation:   req.Operation,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": requestResponse(result)})
}

// List GET /requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	filter := parseRequestQuery(c)
	requests, err := h.service.ListRequests(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, requestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	result, err := h.service.GetRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(result)})
}

// Decide POST /requests/:id/decision.
func (h *RequestsHandler) Decide(c *fiber.Ctx) error {
	var req dto.DecideRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Transition(c.UserContext(), c.Params("id"), req.Status, auth.PrincipalFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(result)})
}

// History GET /requests/:id/history.
func (h *RequestsHandler) History(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	entries, err := h.service.ListHistory(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.RequestHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.RequestHistoryResponse{
			ID:         entry.ID,
			ChangedBy:  entry.ChangedBy,
			ChangeType: string(entry.ChangeType),
			OldValue:   entry.OldValue,
			NewValue:   entry.NewValue,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func requestResponse(req *domain.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:          req.ID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Address:     req.Address,
		Price:       req.Price,
		Rooms:       req.Rooms,
		Operation:   req.Operation,
		Status:      req.Status,
		Notes:       req.Notes,
		DecidedBy:   req.DecidedBy,
		DecidedAt:   req.DecidedAt,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}

func parseRequestQuery(c *fiber.Ctx) repository.RequestFilter {
	filter := repository.RequestFilter{}
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status := domain.RequestStatus(strings.ToLower(strings.TrimSpace(part)))
			if status.IsValid() {
				filter.Statuses = append(filter.Statuses, status)
			}
		}
	}
	if op := strings.TrimSpace(c.Query("operation")); op != "" {
		filter.Operation = &op
	}
	filter.Limit, filter.Offset = parsePagination(c)
	return filter
}

func parsePagination(c *fiber.Ctx) (int, int) {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
