package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
	"github.com/andreeesz17/inmobiliaria-service/internal/events"
	"github.com/andreeesz17/inmobiliaria-service/internal/notify"
	"github.com/andreeesz17/inmobiliaria-service/internal/repository"
	"github.com/andreeesz17/inmobiliaria-service/internal/service"
	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*domain.Request
	nextID   int

	getDelay    time.Duration
	updateDelay time.Duration
	updateCalls int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]*domain.Request{}}
}

func (f *fakeRequestRepo) seed(status domain.RequestStatus) *domain.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	req := &domain.Request{
		ID:          fmt.Sprintf("req-%d", f.nextID),
		ClientName:  "Client",
		ClientEmail: "client@example.com",
		Address:     "Calle Mayor 1",
		Price:       120000,
		Rooms:       3,
		Operation:   "sale",
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.requests[req.ID] = req
	return req
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *domain.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	req.ID = fmt.Sprintf("req-%d", f.nextID)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	clone := *req
	f.requests[req.ID] = &clone
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	if f.getDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.getDelay):
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.NewNotFound("request", nil)
	}
	clone := *req
	return &clone, nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filter repository.RequestFilter) ([]domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Request
	for _, req := range f.requests {
		result = append(result, *req)
	}
	return result, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus, decidedBy string) (*domain.Request, error) {
	if f.updateDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.updateDelay):
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.NewNotFound("request", nil)
	}
	if req.Status != domain.RequestStatusPending {
		clone := *req
		return &clone, repository.ErrNotPending
	}
	now := time.Now()
	req.Status = status
	req.DecidedBy = &decidedBy
	req.DecidedAt = &now
	req.UpdatedAt = now
	clone := *req
	return &clone, nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.RequestHistory
}

func (f *fakeHistoryRepo) Create(ctx context.Context, entry *domain.RequestHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepo) ListByRequest(ctx context.Context, requestID string, limit, offset int) ([]domain.RequestHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.RequestHistory
	for _, entry := range f.entries {
		if entry.RequestID == requestID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type recordingSink struct {
	mu            sync.Mutex
	notifications []notify.Notification
}

func (r *recordingSink) Push(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *recordingSink) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.notifications...)
}

type fixture struct {
	service    *service.RequestService
	repo       *fakeRequestRepo
	history    *fakeHistoryRepo
	sink       *recordingSink
	dispatcher events.Dispatcher
}

func newFixture(t *testing.T, opts ...service.RequestOption) *fixture {
	t.Helper()
	repo := newFakeRequestRepo()
	history := &fakeHistoryRepo{}
	sink := &recordingSink{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := service.NewRequestService(service.RequestDependencies{
		RequestRepo: repo,
		HistoryRepo: history,
		Dispatcher:  dispatcher,
		Sink:        sink,
	}, zap.NewNop(), opts...)
	return &fixture{service: svc, repo: repo, history: history, sink: sink, dispatcher: dispatcher}
}

var adminActor = auth.Principal{Authenticated: true, Role: "admin", Username: "maria"}

func validSubmission() service.SubmitInput {
	return service.SubmitInput{
		ClientName:  "Pablo",
		ClientEmail: "pablo@example.com",
		Address:     "Av. Libertad 42",
		Price:       "250000",
		Rooms:       "4",
		Operation:   "rent",
	}
}

func TestRequestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission starts pending", func(t *testing.T) {
		f := newFixture(t)
		req, err := f.service.Submit(ctx, adminActor, validSubmission())
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusPending, req.Status)
		assert.Equal(t, 250000.0, req.Price)
		assert.Equal(t, 4, req.Rooms)
		assert.NotEmpty(t, req.ID)
	})

	t.Run("missing fields create nothing", func(t *testing.T) {
		f := newFixture(t)
		input := validSubmission()
		input.ClientName = "  "
		input.Address = ""

		_, err := f.service.Submit(ctx, adminActor, input)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Contains(t, domainErr.Details, "client_name")
		assert.Contains(t, domainErr.Details, "address")
		assert.Empty(t, f.repo.requests, "no entity on validation failure")
	})

	t.Run("non-numeric price and rooms are rejected", func(t *testing.T) {
		f := newFixture(t)
		input := validSubmission()
		input.Price = "expensive"
		input.Rooms = "many"

		_, err := f.service.Submit(ctx, adminActor, input)
		require.Error(t, err)

		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "must be a number", domainErr.Details["price"])
		assert.Equal(t, "must be a number", domainErr.Details["rooms"])
	})

	t.Run("submission publishes a created event", func(t *testing.T) {
		f := newFixture(t)
		var got []events.Event
		f.dispatcher.Subscribe(events.EventRequestCreated, func(_ context.Context, e events.Event) error {
			got = append(got, e)
			return nil
		})

		req, err := f.service.Submit(ctx, adminActor, validSubmission())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, req.ID, got[0].RequestID)
	})
}

func TestRequestService_Transition(t *testing.T) {
	ctx := context.Background()

	t.Run("approve moves pending to approved", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.repo.seed(domain.RequestStatusPending)

		updated, err := f.service.Transition(ctx, seeded.ID, domain.RequestStatusApproved, adminActor)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusApproved, updated.Status)
		require.NotNil(t, updated.DecidedBy)
		assert.Equal(t, "maria", *updated.DecidedBy)
		assert.NotNil(t, updated.DecidedAt)

		notifications := f.sink.all()
		require.Len(t, notifications, 1)
		assert.Equal(t, notify.KindSuccess, notifications[0].Kind)
		assert.Equal(t, "Request approved", notifications[0].Message)
	})

	t.Run("decline moves pending to declined", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.repo.seed(domain.RequestStatusPending)

		updated, err := f.service.Transition(ctx, seeded.ID, domain.RequestStatusDeclined, adminActor)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusDeclined, updated.Status)
	})

	t.Run("pending is not a legal target", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.repo.seed(domain.RequestStatusPending)

		_, err := f.service.Transition(ctx, seeded.ID, domain.RequestStatusPending, adminActor)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("unauthorized role is rejected before any repository access", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.repo.seed(domain.RequestStatusPending)
		user := auth.Principal{Authenticated: true, Role: "user", Username: "pepe"}

		_, err := f.service.Transition(ctx, seeded.ID, domain.RequestStatusApproved, user)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
		assert.Zero(t, f.repo.updateCalls, "no persistence attempt for unauthorized actor")

		current, err := f.repo.GetByID(ctx, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusPending, current.Status, "entity unchanged")
	})

	t.Run("agent may decide", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.repo.seed(domain.RequestStatusPending)
		agent := auth.Principal{Authenticated: true, Role: "agent", Username: "laura"}

		updated, err := f.service.Transition(ctx, seeded.ID, domain.RequestStatusApproved, agent)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusApproved, updated.Status)
	})

	t.Run("already decided is a conflict, not a crash", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.repo.seed(domain.RequestStatusApproved)

		_, err := f.service.Transition(ctx, seeded.ID, domain.RequestStatusDeclined, adminActor)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "CONFLICT"))

		current, getErr := f.repo.GetByID(ctx, seeded.ID)
		require.NoError(t, getErr)
		assert.Equal(t, domain.RequestStatusApproved, current.Status, "terminal state untouched")
	})

	t.Run("missing request maps to not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Transition(ctx, "req-does-not-exist", domain.RequestStatusApproved, adminActor)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	})

	t.Run("persistence timeout surfaces as timeout error", func(t *testing.T) {
		f := newFixture(t, service.WithPersistTimeout(30*time.Millisecond))
		seeded := f.repo.seed(domain.RequestStatusPending)
		f.repo.updateDelay = 200 * time.Millisecond

		_, err := f.service.Transition(ctx, seeded.ID, domain.RequestStatusApproved, adminActor)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "TIMEOUT"))

		f.repo.updateDelay = 0
		current, getErr := f.repo.GetByID(ctx, seeded.ID)
		require.NoError(t, getErr)
		assert.Equal(t, domain.RequestStatusPending, current.Status, "timed out write leaves state intact")
	})

	t.Run("successful decision records history and event", func(t *testing.T) {
		f := newFixture(t)
		var got []events.Event
		f.dispatcher.Subscribe(events.EventRequestStatusChanged, func(_ context.Context, e events.Event) error {
			got = append(got, e)
			return nil
		})
		seeded := f.repo.seed(domain.RequestStatusPending)

		_, err := f.service.Transition(ctx, seeded.ID, domain.RequestStatusApproved, adminActor)
		require.NoError(t, err)

		require.Len(t, got, 1)
		payload, ok := got[0].Payload.(events.RequestStatusChangedPayload)
		require.True(t, ok)
		assert.Equal(t, domain.RequestStatusPending, payload.OldStatus)
		assert.Equal(t, domain.RequestStatusApproved, payload.NewStatus)

		entries, err := f.history.ListByRequest(ctx, seeded.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.ChangeTypeStatus, entries[0].ChangeType)
	})

	t.Run("every failed attempt emits exactly one error notification", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.repo.seed(domain.RequestStatusDeclined)

		_, err := f.service.Transition(ctx, seeded.ID, domain.RequestStatusApproved, adminActor)
		require.Error(t, err)

		notifications := f.sink.all()
		require.Len(t, notifications, 1)
		assert.Equal(t, notify.KindError, notifications[0].Kind)
		assert.Equal(t, "request already declined", notifications[0].Message)
	})

	t.Run("timed out decision notifies with the timeout message", func(t *testing.T) {
		f := newFixture(t, service.WithPersistTimeout(30*time.Millisecond))
		seeded := f.repo.seed(domain.RequestStatusPending)
		f.repo.updateDelay = 200 * time.Millisecond

		_, err := f.service.Transition(ctx, seeded.ID, domain.RequestStatusApproved, adminActor)
		require.Error(t, err)

		notifications := f.sink.all()
		require.Len(t, notifications, 1)
		assert.Equal(t, "could not approve request: timed out", notifications[0].Message)
	})

	t.Run("concurrent decisions on one request collapse to a single winner", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.repo.seed(domain.RequestStatusPending)
		f.repo.getDelay = 20 * time.Millisecond

		var wg sync.WaitGroup
		errs := make([]error, 2)
		targets := []domain.RequestStatus{domain.RequestStatusApproved, domain.RequestStatusDeclined}
		for i := range targets {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.service.Transition(ctx, seeded.ID, targets[i], adminActor)
			}(i)
		}
		wg.Wait()

		var failures int
		for _, err := range errs {
			if err != nil {
				failures++
				assert.True(t, apperrors.IsCode(err, "CONFLICT"))
			}
		}
		assert.Equal(t, 1, failures, "exactly one attempt loses")

		current, err := f.repo.GetByID(ctx, seeded.ID)
		require.NoError(t, err)
		assert.True(t, current.Status.IsTerminal())
	})

	t.Run("decisions on different requests proceed independently", func(t *testing.T) {
		f := newFixture(t)
		first := f.repo.seed(domain.RequestStatusPending)
		second := f.repo.seed(domain.RequestStatusPending)

		_, err := f.service.Transition(ctx, first.ID, domain.RequestStatusApproved, adminActor)
		require.NoError(t, err)
		_, err = f.service.Transition(ctx, second.ID, domain.RequestStatusDeclined, adminActor)
		require.NoError(t, err)
	})
}
