package domain

import "time"

// Property is a managed listing in the catalog.
type Property struct {
	ID          string
	Title       string
	Address     string
	Price       float64
	Rooms       int
	Operation   string
	Description string
	Published   bool
	AgentID     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
