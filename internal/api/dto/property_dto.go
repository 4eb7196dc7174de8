package dto

import "time"

// PropertyRequest payload for create/update.
type PropertyRequest struct {
	Title       string  `json:"title"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Rooms       int     `json:"rooms"`
	Operation   string  `json:"operation"`
	Description string  `json:"description"`
	Published   bool    `json:"published"`
	AgentID     *string `json:"agent_id"`
}

// PropertyResponse response.
type PropertyResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Price       float64   `json:"price"`
	Rooms       int       `json:"rooms"`
	Operation   string    `json:"operation"`
	Description string    `json:"description"`
	Published   bool      `json:"published"`
	AgentID     *string   `json:"agent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
