// store/request_store.go
package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/imdes/console/audit"
	console_errors "github.com/imdes/console/errors"
	logger "github.com/imdes/console/logging"
	"github.com/imdes/console/model"
	"github.com/imdes/console/service"
	"github.com/imdes/console/session"
	"github.com/imdes/console/util"
)

// RequestStore holds the fetched data request collection. A failed refresh
// keeps the previous items (stale but available); mutations reach a
// consistent view by refetching the whole collection, never by patching
// local state.
type RequestStore struct {
	requests   *service.RequestService
	session    *session.Store
	validation *util.ValidationUtil
	auditLog   *audit.Logger

	mu         sync.RWMutex
	items      []model.DataRequest
	err        string
	loading    bool
	generation uint64

	subMu       sync.Mutex
	subscribers []func()
}

func NewRequestStore(requests *service.RequestService, sessionStore *session.Store, validation *util.ValidationUtil, auditLog *audit.Logger) *RequestStore {
	return &RequestStore{
		requests:   requests,
		session:    sessionStore,
		validation: validation,
		auditLog:   auditLog,
	}
}

// Items returns a snapshot of the current collection.
func (s *RequestStore) Items() []model.DataRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.DataRequest, len(s.items))
	copy(items, s.items)
	return items
}

func (s *RequestStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *RequestStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registers fn to run after every state change.
func (s *RequestStore) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *RequestStore) notify() {
	s.subMu.Lock()
	subscribers := make([]func(), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.subMu.Unlock()
	for _, fn := range subscribers {
		fn()
	}
}

// Refresh replaces the collection from upstream. Concurrent refreshes are
// not deduplicated; a response that loses the race is discarded instead of
// clobbering newer state.
func (s *RequestStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.generation++
	generation := s.generation
	s.mu.Unlock()
	s.notify()

	items, err := s.requests.GetAll(ctx)

	s.mu.Lock()
	if generation != s.generation {
		// A newer refresh has started; this result is stale.
		s.mu.Unlock()
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		s.mu.Unlock()
		s.notify()
		logger.Warn("Data request refresh failed, keeping stale collection", zap.Error(err))
		return err
	}
	s.items = items
	s.mu.Unlock()
	s.notify()
	return nil
}

// Create validates the form input, builds the full payload from the
// current session and submits it. On success the collection is refetched
// and the creation is audited.
func (s *RequestStore) Create(ctx context.Context, input model.DataRequestInput, targetMinistryName string) (model.DataRequest, error) {
	if err := s.validation.ValidateDataRequestInput(input); err != nil {
		return model.DataRequest{}, fmt.Errorf("%w: %v", console_errors.ErrInvalidRequestData, err)
	}
	if !input.SupervisorApproved {
		return model.DataRequest{}, console_errors.ErrSupervisorNotApproved
	}

	user := s.session.User()
	if user == nil {
		return model.DataRequest{}, console_errors.ErrUnauthorized
	}

	payload := model.DataRequest{
		RequestingMinistryID:    user.MinistryID,
		TargetMinistryID:        input.TargetMinistryID,
		RequestedBy:             user.ID,
		DataTypeID:              input.DataTypeID,
		SpecificRecordIDs:       input.SpecificRecordIDs,
		Purpose:                 input.Purpose,
		Justification:           input.Justification,
		LegalBasis:              input.LegalBasis,
		Urgency:                 input.Urgency,
		RetentionPeriodDays:     input.RetentionPeriodDays,
		DataSharingAcknowledged: input.DataSharingAcknowledged,
		SupervisorApproved:      input.SupervisorApproved,
		RequestorName:           input.RequestorName,
		RequestorPosition:       input.RequestorPosition,
		Status:                  model.StatusPending,
	}

	created, err := s.requests.Create(ctx, payload)
	if err != nil {
		return model.DataRequest{}, err
	}

	if s.auditLog != nil {
		s.auditLog.DataRequestCreated(created.ID, targetMinistryName)
	}
	if err := s.Refresh(ctx); err != nil {
		logger.Warn("Refetch after create failed", zap.Error(err))
	}
	return created, nil
}

// Approve moves a pending request to approved. The transition is checked
// against the locally cached record before the PUT is issued.
func (s *RequestStore) Approve(ctx context.Context, id string) (model.DataRequest, error) {
	return s.decide(ctx, id, model.StatusApproved, model.ActionApproval)
}

// Reject moves a pending request to rejected.
func (s *RequestStore) Reject(ctx context.Context, id string) (model.DataRequest, error) {
	return s.decide(ctx, id, model.StatusRejected, model.ActionRejection)
}

func (s *RequestStore) decide(ctx context.Context, id string, status model.RequestStatus, action model.AuditAction) (model.DataRequest, error) {
	current, ok := s.find(id)
	if !ok {
		fetched, err := s.requests.GetByID(ctx, id)
		if err != nil {
			return model.DataRequest{}, console_errors.ErrRequestNotFound
		}
		current = fetched
	}
	if !current.Status.CanTransitionTo(status) {
		return model.DataRequest{}, fmt.Errorf("%w: %s -> %s", console_errors.ErrInvalidStatusChange, current.Status, status)
	}

	updated, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.DataRequest{}, err
	}

	if s.auditLog != nil {
		s.auditLog.Decision(id, action)
	}
	if err := s.Refresh(ctx); err != nil {
		logger.Warn("Refetch after status change failed", zap.Error(err))
	}
	return updated, nil
}

// Delete exists for completeness; the normal review flow never removes a
// request.
func (s *RequestStore) Delete(ctx context.Context, id string) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		logger.Warn("Refetch after delete failed", zap.Error(err))
	}
	return nil
}

func (s *RequestStore) find(id string) (model.DataRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.items {
		if r.ID == id {
			return r, true
		}
	}
	return model.DataRequest{}, false
}
