package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
)

// ErrNotPending reports a status update against a request that already
// reached a terminal state. Callers treat it as an idempotent-safe
// conflict, not a crash.
var ErrNotPending = errors.New("request is not pending")

// RequestFilter captures listing parameters.
type RequestFilter struct {
	Statuses    []domain.RequestStatus
	Operation   *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// RequestRepository encapsulates request persistence.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]domain.Request, error)
	// UpdateStatus records a terminal decision. The update is
	// conditional on the row still being pending; a request that
	// already left pending yields ErrNotPending.
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus, decidedBy string) (*domain.Request, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

const requestColumns = `id, client_name, client_email, address, price, rooms, operation,
               status, notes, decided_by, decided_at, created_at, updated_at`

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	const query = `
        INSERT INTO requests (client_name, client_email, address, price, rooms, operation, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		req.ClientName,
		req.ClientEmail,
		req.Address,
		req.Price,
		req.Rooms,
		req.Operation,
		req.Status,
		req.Notes,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM requests WHERE id=$1`, requestColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus, decidedBy string) (*domain.Request, error) {
	query := fmt.Sprintf(`
        UPDATE requests SET status=$1, decided_by=$2, decided_at=NOW(), updated_at=NOW()
        WHERE id=$3 AND status=$4
        RETURNING %s`, requestColumns)

	req, err := r.fetchSingle(ctx, query, status, decidedBy, id, domain.RequestStatusPending)
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Distinguish "already decided" from "no such request".
	existing, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if existing.Status != domain.RequestStatusPending {
		return existing, ErrNotPending
	}
	return nil, err
}

func (r *requestRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Request, error) {
	var req domain.Request
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&req.ID,
		&req.ClientName,
		&req.ClientEmail,
		&req.Address,
		&req.Price,
		&req.Rooms,
		&req.Operation,
		&req.Status,
		&req.Notes,
		&req.DecidedBy,
		&req.DecidedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]domain.Request, error) {
	base := fmt.Sprintf(`SELECT %s FROM requests`, requestColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Operation != nil && strings.TrimSpace(*filter.Operation) != "" {
		args = append(args, strings.TrimSpace(*filter.Operation))
		clauses = append(clauses, fmt.Sprintf("operation=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	var result []domain.Request
	for rows.Next() {
		var req domain.Request
		if err := rows.Scan(
			&req.ID,
			&req.ClientName,
			&req.ClientEmail,
			&req.Address,
			&req.Price,
			&req.Rooms,
			&req.Operation,
			&req.Status,
			&req.Notes,
			&req.DecidedBy,
			&req.DecidedAt,
			&req.CreatedAt,
			&req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}
