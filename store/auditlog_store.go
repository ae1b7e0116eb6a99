// store/auditlog_store.go
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	logger "github.com/imdes/console/logging"
	"github.com/imdes/console/model"
	"github.com/imdes/console/service"
)

// AuditLogStore holds the fetched audit trail with the same
// stale-but-available refresh semantics as the request store.
type AuditLogStore struct {
	logs *service.AuditLogService

	mu         sync.RWMutex
	items      []model.AuditLogEntry
	err        string
	loading    bool
	generation uint64

	subMu       sync.Mutex
	subscribers []func()
}

func NewAuditLogStore(logs *service.AuditLogService) *AuditLogStore {
	return &AuditLogStore{logs: logs}
}

func (s *AuditLogStore) Items() []model.AuditLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.AuditLogEntry, len(s.items))
	copy(items, s.items)
	return items
}

func (s *AuditLogStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *AuditLogStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *AuditLogStore) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *AuditLogStore) notify() {
	s.subMu.Lock()
	subscribers := make([]func(), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.subMu.Unlock()
	for _, fn := range subscribers {
		fn()
	}
}

func (s *AuditLogStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.generation++
	generation := s.generation
	s.mu.Unlock()
	s.notify()

	items, err := s.logs.GetAll(ctx)

	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		s.mu.Unlock()
		s.notify()
		logger.Warn("Audit log refresh failed, keeping stale collection", zap.Error(err))
		return err
	}
	s.items = items
	s.mu.Unlock()
	s.notify()
	return nil
}

// Create submits a manual entry and refetches. The automatic audit trail
// goes through audit.Logger instead.
func (s *AuditLogStore) Create(ctx context.Context, entry model.AuditLogEntry) (model.AuditLogEntry, error) {
	created, err := s.logs.Create(ctx, entry)
	if err != nil {
		return model.AuditLogEntry{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		logger.Warn("Refetch after audit create failed", zap.Error(err))
	}
	return created, nil
}

func (s *AuditLogStore) Update(ctx context.Context, id string, patch map[string]interface{}) (model.AuditLogEntry, error) {
	updated, err := s.logs.Update(ctx, id, patch)
	if err != nil {
		return model.AuditLogEntry{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		logger.Warn("Refetch after audit update failed", zap.Error(err))
	}
	return updated, nil
}

func (s *AuditLogStore) Delete(ctx context.Context, id string) error {
	if err := s.logs.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		logger.Warn("Refetch after audit delete failed", zap.Error(err))
	}
	return nil
}
