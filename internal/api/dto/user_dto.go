package dto

import (
	"time"

	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
)

// UserSummary is the directory view of an account. Credentials never
// leave the service.
type UserSummary struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      domain.Role       `json:"role"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}
