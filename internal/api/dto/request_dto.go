package dto

import (
	"time"

	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
)

// SubmitRequestRequest payload. Price and rooms are accepted as text,
// matching the inquiry form, and validated server-side.
type SubmitRequestRequest struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	Address     string `json:"address"`
	Price       string `json:"price"`
	Rooms       string `json:"rooms"`
	Operation   string `json:"operation"`
	Notes       string `json:"notes"`
}

// DecideRequestRequest payload.
type DecideRequestRequest struct {
	Status domain.RequestStatus `json:"status"`
}

// RequestResponse response.
type RequestResponse struct {
	ID          string               `json:"id"`
	ClientName  string               `json:"client_name"`
	ClientEmail string               `json:"client_email"`
	Address     string               `json:"address"`
	Price       float64              `json:"price"`
	Rooms       int                  `json:"rooms"`
	Operation   string               `json:"operation"`
	Status      domain.RequestStatus `json:"status"`
	Notes       *string              `json:"notes,omitempty"`
	DecidedBy   *string              `json:"decided_by,omitempty"`
	DecidedAt   *time.Time           `json:"decided_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// RequestHistoryResponse is one audit entry.
type RequestHistoryResponse struct {
	ID         string         `json:"id"`
	ChangedBy  *string        `json:"changed_by,omitempty"`
	ChangeType string         `json:"change_type"`
	OldValue   map[string]any `json:"old_value,omitempty"`
	NewValue   map[string]any `json:"new_value,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
