package domain

import "time"

// RequestStatus enumerates lifecycle states for property inquiries.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusDeclined RequestStatus = "declined"
)

// IsValid reports whether the status is one of the known states.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusDeclined:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status admits no further transition.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusDeclined
}

var allowedRequestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:  {RequestStatusApproved, RequestStatusDeclined},
	RequestStatusApproved: {},
	RequestStatusDeclined: {},
}

// CanTransition reports whether moving from the current status to next is legal.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	for _, candidate := range allowedRequestTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Request is the aggregate for a client inquiry about a property.
type Request struct {
	ID          string
	ClientName  string
	ClientEmail string
	Address     string
	Price       float64
	Rooms       int
	Operation   string
	Status      RequestStatus
	Notes       *string
	DecidedBy   *string
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
