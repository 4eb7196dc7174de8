package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
	"github.com/andreeesz17/inmobiliaria-service/internal/events"
	"github.com/andreeesz17/inmobiliaria-service/internal/notify"
	"github.com/andreeesz17/inmobiliaria-service/internal/repository"
	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

const defaultPersistTimeout = 5 * time.Second

// RequestService coordinates the inquiry lifecycle: submission into
// pending, and role-gated transitions into a terminal decision.
type RequestService struct {
	requests       repository.RequestRepository
	history        repository.RequestHistoryRepository
	dispatcher     events.Dispatcher
	sink           notify.Sink
	logger         *zap.Logger
	persistTimeout time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	HistoryRepo repository.RequestHistoryRepository
	Dispatcher  events.Dispatcher
	Sink        notify.Sink
}

// RequestOption customizes the service.
type RequestOption func(*RequestService)

// WithPersistTimeout bounds every persistence call issued by the
// lifecycle; an expired deadline surfaces as a timeout error.
func WithPersistTimeout(d time.Duration) RequestOption {
	return func(s *RequestService) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies, logger *zap.Logger, opts ...RequestOption) *RequestService {
	s := &RequestService{
		requests:       deps.RequestRepo,
		history:        deps.HistoryRepo,
		dispatcher:     deps.Dispatcher,
		sink:           deps.Sink,
		logger:         logger,
		persistTimeout: defaultPersistTimeout,
		inFlight:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitInput carries the raw submission form. Price and rooms arrive as
// text and must parse as numbers.
type SubmitInput struct {
	ClientName  string
	ClientEmail string
	Address     string
	Price       string
	Rooms       string
	Operation   string
	Notes       string
}

// Submit creates a new request in the pending state. Any validation
// violation creates no entity and causes no side effect.
func (s *RequestService) Submit(ctx context.Context, actor auth.Principal, input SubmitInput) (*domain.Request, error) {
	req, err := buildRequest(input)
	if err != nil {
		return nil, err
	}

	persistCtx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()
	if err := s.requests.Create(persistCtx, req); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: req.ID,
		Actor:     actorFromPrincipal(actor),
		Payload: events.RequestCreatedPayload{
			Address:   req.Address,
			Operation: req.Operation,
			Price:     req.Price,
			Rooms:     req.Rooms,
		},
	})
	return req, nil
}

func buildRequest(input SubmitInput) (*domain.Request, error) {
	details := map[string]any{}

	clientName := strings.TrimSpace(input.ClientName)
	clientEmail := strings.TrimSpace(input.ClientEmail)
	address := strings.TrimSpace(input.Address)
	operation := strings.TrimSpace(input.Operation)

	if clientName == "" {
		details["client_name"] = "required"
	}
	if clientEmail == "" {
		details["client_email"] = "required"
	}
	if address == "" {
		details["address"] = "required"
	}
	if operation == "" {
		details["operation"] = "required"
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(input.Price), 64)
	if strings.TrimSpace(input.Price) == "" {
		details["price"] = "required"
	} else if err != nil {
		details["price"] = "must be a number"
	}

	rooms, err := strconv.Atoi(strings.TrimSpace(input.Rooms))
	if strings.TrimSpace(input.Rooms) == "" {
		details["rooms"] = "required"
	} else if err != nil {
		details["rooms"] = "must be a number"
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid request submission", details)
	}

	req := &domain.Request{
		ClientName:  clientName,
		ClientEmail: clientEmail,
		Address:     address,
		Price:       price,
		Rooms:       rooms,
		Operation:   operation,
		Status:      domain.RequestStatusPending,
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		req.Notes = &notes
	}
	return req, nil
}

// ListRequests returns inquiries matching the filter.
func (s *RequestService) ListRequests(ctx context.Context, filter repository.RequestFilter) ([]domain.Request, error) {
	result, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// GetRequest fetches one inquiry.
func (s *RequestService) GetRequest(ctx context.Context, id string) (*domain.Request, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return req, nil
}

// Transition records a terminal decision on a pending request. The
// authorization check runs before anything else touches the repository,
// and a failed persistence call leaves the entity exactly as it was.
// One notification is emitted per outcome.
func (s *RequestService) Transition(ctx context.Context, requestID string, target domain.RequestStatus, actor auth.Principal) (*domain.Request, error) {
	verb := decisionVerb(target)
	if !target.IsTerminal() {
		return nil, s.fail(verb, apperrors.NewValidationError(
			fmt.Sprintf("invalid target status %q", target), nil))
	}

	if !auth.IsRoleAllowed(actor.Role, auth.AllowedRoles(auth.AreaRequestDecisions)) {
		return nil, s.fail(verb, apperrors.NewForbidden(
			fmt.Sprintf("role not allowed to %s requests", verb)))
	}

	if !s.tryAcquire(requestID) {
		return nil, s.fail(verb, apperrors.NewConflict("decision already in progress", nil))
	}
	defer s.release(requestID)

	persistCtx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()

	current, err := s.requests.GetByID(persistCtx, requestID)
	if err != nil {
		return nil, s.fail(verb, s.mapPersistError(err, verb))
	}
	if current.Status != domain.RequestStatusPending {
		return nil, s.fail(verb, apperrors.NewConflict(
			fmt.Sprintf("request already %s", current.Status), nil))
	}

	updated, err := s.requests.UpdateStatus(persistCtx, requestID, target, actor.Username)
	if err != nil {
		// The repository lost a race it could not see client-side;
		// treat it the same as the precondition failure above.
		if errors.Is(err, repository.ErrNotPending) {
			return nil, s.fail(verb, apperrors.NewConflict("request already decided", nil))
		}
		return nil, s.fail(verb, s.mapPersistError(err, verb))
	}

	s.recordStatusChange(ctx, actor, updated, current.Status)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: updated.ID,
		Actor:     actorFromPrincipal(actor),
		Payload: events.RequestStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: updated.Status,
		},
	})

	s.push(notify.Notification{
		Message: fmt.Sprintf("Request %s", updated.Status),
		Kind:    notify.KindSuccess,
	})
	return updated, nil
}

func (s *RequestService) tryAcquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *RequestService) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

// fail emits the error notification for a transition outcome, preferring
// the structured message and falling back to a generic one.
func (s *RequestService) fail(verb string, err error) error {
	message := fmt.Sprintf("could not %s request", verb)
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" && domainErr.Code != "INTERNAL_ERROR" {
		message = domainErr.Message
	}
	s.push(notify.Notification{Message: message, Kind: notify.KindError})
	return err
}

func (s *RequestService) mapPersistError(err error, verb string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeout(fmt.Sprintf("could not %s request: timed out", verb))
	}
	return apperrors.MapError(err)
}

func (s *RequestService) recordStatusChange(ctx context.Context, actor auth.Principal, req *domain.Request, oldStatus domain.RequestStatus) {
	if s.history == nil {
		return
	}
	var changedBy *string
	if actor.Username != "" {
		username := actor.Username
		changedBy = &username
	}
	entry := &domain.RequestHistory{
		RequestID:  req.ID,
		ChangedBy:  changedBy,
		ChangeType: domain.ChangeTypeStatus,
		OldValue:   map[string]any{"status": oldStatus},
		NewValue:   map[string]any{"status": req.Status},
	}
	if err := s.history.Create(ctx, entry); err != nil {
		s.logger.Warn("request history write failed", zap.Error(err))
	}
}

// ListHistory returns the audit trail for a request.
func (s *RequestService) ListHistory(ctx context.Context, requestID string, limit, offset int) ([]domain.RequestHistory, error) {
	if s.history == nil {
		return []domain.RequestHistory{}, nil
	}
	result, err := s.history.ListByRequest(ctx, requestID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

func (s *RequestService) push(n notify.Notification) {
	if s.sink == nil {
		return
	}
	s.sink.Push(n)
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func decisionVerb(target domain.RequestStatus) string {
	if target == domain.RequestStatusDeclined {
		return "decline"
	}
	return "approve"
}

func actorFromPrincipal(p auth.Principal) events.Actor {
	return events.Actor{
		Role:     strings.ToLower(p.Role),
		Username: p.Username,
	}
}
