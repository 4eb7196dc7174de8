package domain

import "time"

// Appointment is a scheduled visit to a property.
type Appointment struct {
	ID          string
	PropertyID  string
	UserID      string
	ScheduledAt time.Time
	Notes       *string
	CreatedAt   time.Time
}
