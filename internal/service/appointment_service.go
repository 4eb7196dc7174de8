package service

import (
	"context"
	"time"

	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
	"github.com/andreeesz17/inmobiliaria-service/internal/repository"
	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

// AppointmentService schedules property visits.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	properties   repository.PropertyRepository
}

// NewAppointmentService constructs the service.
func NewAppointmentService(appointments repository.AppointmentRepository, properties repository.PropertyRepository) *AppointmentService {
	return &AppointmentService{appointments: appointments, properties: properties}
}

// Schedule books a visit after verifying the property exists and the
// slot is in the future.
func (s *AppointmentService) Schedule(ctx context.Context, userID, propertyID string, at time.Time, notes string) (*domain.Appointment, error) {
	if at.Before(time.Now()) {
		return nil, apperrors.NewValidationError("scheduled time must be in the future", nil)
	}
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		return nil, apperrors.MapError(err)
	}

	appointment := &domain.Appointment{
		PropertyID:  propertyID,
		UserID:      userID,
		ScheduledAt: at,
	}
	if notes != "" {
		appointment.Notes = &notes
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return appointment, nil
}

// ListForUser returns the caller's upcoming visits.
func (s *AppointmentService) ListForUser(ctx context.Context, userID string, limit, offset int) ([]domain.Appointment, error) {
	result, err := s.appointments.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListAll returns every scheduled visit, for agents.
func (s *AppointmentService) ListAll(ctx context.Context, limit, offset int) ([]domain.Appointment, error) {
	result, err := s.appointments.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}
