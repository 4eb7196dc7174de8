package dto

import "time"

// AppointmentRequest payload.
type AppointmentRequest struct {
	PropertyID  string    `json:"property_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes"`
}

// AppointmentResponse response.
type AppointmentResponse struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	UserID      string    `json:"user_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
