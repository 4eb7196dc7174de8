package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
)

// AppointmentRepository encapsulates appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Appointment, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

const appointmentColumns = `id, property_id, user_id, scheduled_at, notes, created_at`

func (r *appointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (property_id, user_id, scheduled_at, notes)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		appointment.PropertyID,
		appointment.UserID,
		appointment.ScheduledAt,
		appointment.Notes,
	).Scan(&appointment.ID, &appointment.CreatedAt)
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + `
        FROM appointments WHERE user_id=$3 ORDER BY scheduled_at ASC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset, userID)
}

func (r *appointmentRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + `
        FROM appointments ORDER BY scheduled_at ASC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *appointmentRepository) list(ctx context.Context, query string, limit, offset int, extra ...any) ([]domain.Appointment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	args := append([]any{limit, offset}, extra...)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Appointment
	for rows.Next() {
		var appointment domain.Appointment
		if err := rows.Scan(
			&appointment.ID,
			&appointment.PropertyID,
			&appointment.UserID,
			&appointment.ScheduledAt,
			&appointment.Notes,
			&appointment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, appointment)
	}
	return result, rows.Err()
}
