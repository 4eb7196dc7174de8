package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
)

// PropertyFilter captures listing parameters.
type PropertyFilter struct {
	Operation *string
	Published *bool
	AgentID   *string
	Limit     int
	Offset    int
}

// PropertyRepository encapsulates property persistence.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]domain.Property, error)
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository instantiates repository.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

const propertyColumns = `id, title, address, price, rooms, operation, description, published, agent_id, created_at, updated_at`

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        INSERT INTO properties (title, address, price, rooms, operation, description, published, agent_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		property.Title,
		property.Address,
		property.Price,
		property.Rooms,
		property.Operation,
		property.Description,
		property.Published,
		property.AgentID,
	).Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	const query = `
        UPDATE properties SET title=$1, address=$2, price=$3, rooms=$4, operation=$5,
            description=$6, published=$7, agent_id=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		property.Title,
		property.Address,
		property.Price,
		property.Rooms,
		property.Operation,
		property.Description,
		property.Published,
		property.AgentID,
		property.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id=$1`, propertyColumns)
	var property domain.Property
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&property.ID,
		&property.Title,
		&property.Address,
		&property.Price,
		&property.Rooms,
		&property.Operation,
		&property.Description,
		&property.Published,
		&property.AgentID,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) List(ctx context.Context, filter PropertyFilter) ([]domain.Property, error) {
	base := fmt.Sprintf(`SELECT %s FROM properties`, propertyColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Operation != nil && strings.TrimSpace(*filter.Operation) != "" {
		args = append(args, strings.TrimSpace(*filter.Operation))
		clauses = append(clauses, fmt.Sprintf("operation=$%d", len(args)))
	}
	if filter.Published != nil {
		args = append(args, *filter.Published)
		clauses = append(clauses, fmt.Sprintf("published=$%d", len(args)))
	}
	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		clauses = append(clauses, fmt.Sprintf("agent_id=$%d", len(args)))
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

	var result []domain.Property
	for rows.Next() {
		var property domain.Property
		if err := rows.Scan(
			&property.ID,
			&property.Title,
			&property.Address,
			&property.Price,
			&property.Rooms,
			&property.Operation,
			&property.Description,
			&property.Published,
			&property.AgentID,
			&property.CreatedAt,
			&property.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, property)
	}
	return result, rows.Err()
}
