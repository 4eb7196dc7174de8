package service

import (
	"context"
	"strings"

	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
	"github.com/andreeesz17/inmobiliaria-service/internal/repository"
	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

// PropertyService covers listing management CRUD.
type PropertyService struct {
	properties repository.PropertyRepository
}

// NewPropertyService constructs the service.
func NewPropertyService(properties repository.PropertyRepository) *PropertyService {
	return &PropertyService{properties: properties}
}

// PropertyInput describes creation/update payload.
type PropertyInput struct {
	Title       string
	Address     string
	Price       float64
	Rooms       int
	Operation   string
	Description string
	Published   bool
	AgentID     *string
}

func (in PropertyInput) validate() error {
	details := map[string]any{}
	if strings.TrimSpace(in.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(in.Address) == "" {
		details["address"] = "required"
	}
	if strings.TrimSpace(in.Operation) == "" {
		details["operation"] = "required"
	}
	if in.Price <= 0 {
		details["price"] = "must be positive"
	}
	if in.Rooms <= 0 {
		details["rooms"] = "must be positive"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid property payload", details)
	}
	return nil
}

// Create adds a listing.
func (s *PropertyService) Create(ctx context.Context, input PropertyInput) (*domain.Property, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	property := &domain.Property{
		Title:       strings.TrimSpace(input.Title),
		Address:     strings.TrimSpace(input.Address),
		Price:       input.Price,
		Rooms:       input.Rooms,
		Operation:   strings.TrimSpace(input.Operation),
		Description: strings.TrimSpace(input.Description),
		Published:   input.Published,
		AgentID:     input.AgentID,
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, apperrors.MapError(err)
	}
	return property, nil
}

// Update replaces a listing's fields.
func (s *PropertyService) Update(ctx context.Context, id string, input PropertyInput) (*domain.Property, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	property.Title = strings.TrimSpace(input.Title)
	property.Address = strings.TrimSpace(input.Address)
	property.Price = input.Price
	property.Rooms = input.Rooms
	property.Operation = strings.TrimSpace(input.Operation)
	property.Description = strings.TrimSpace(input.Description)
	property.Published = input.Published
	property.AgentID = input.AgentID
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, apperrors.MapError(err)
	}
	return property, nil
}

// Delete removes a listing.
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if err := s.properties.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Get fetches a listing.
func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return property, nil
}

// List returns listings matching the filter.
func (s *PropertyService) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, error) {
	result, err := s.properties.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}
