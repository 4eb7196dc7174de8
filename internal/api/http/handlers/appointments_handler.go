package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andreeesz17/inmobiliaria-service/internal/api/dto"
	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
	"github.com/andreeesz17/inmobiliaria-service/internal/service"
	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

// AppointmentsHandler manages visit scheduling endpoints.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// Create POST /appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)
	if principal.Subject == "" {
		return apperrors.NewUnauthorized("unknown subject")
	}

	var req dto.AppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.PropertyID) == "" || req.ScheduledAt.IsZero() {
		return apperrors.NewValidationError("property_id and scheduled_at required", nil)
	}

	appointment, err := h.service.Schedule(c.UserContext(), principal.Subject, req.PropertyID, req.ScheduledAt, strings.TrimSpace(req.Notes))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": appointmentResponse(appointment)})
}

// List GET /appointments. Agents see every visit; users see their own.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)
	limit, offset := parsePagination(c)

	var (
		appointments []domain.Appointment
		err          error
	)
	if auth.IsRoleAllowed(principal.Role, []domain.Role{domain.RoleAdmin, domain.RoleAgent}) {
		appointments, err = h.service.ListAll(c.UserContext(), limit, offset)
	} else {
		appointments, err = h.service.ListForUser(c.UserContext(), principal.Subject, limit, offset)
	}
	if err != nil {
		return err
	}

	items := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		items = append(items, appointmentResponse(&appointments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func appointmentResponse(appointment *domain.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:          appointment.ID,
		PropertyID:  appointment.PropertyID,
		UserID:      appointment.UserID,
		ScheduledAt: appointment.ScheduledAt,
		Notes:       appointment.Notes,
		CreatedAt:   appointment.CreatedAt,
	}
}
