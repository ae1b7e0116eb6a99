// store/reference_store.go
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	logger "github.com/imdes/console/logging"
	"github.com/imdes/console/model"
	"github.com/imdes/console/service"
)

// MinistryStore caches the ministry catalog. Reference data is fetched
// once at startup and only refetched on demand.
type MinistryStore struct {
	ministries *service.MinistryService

	mu         sync.RWMutex
	items      []model.Ministry
	err        string
	loading    bool
	generation uint64
}

func NewMinistryStore(ministries *service.MinistryService) *MinistryStore {
	return &MinistryStore{ministries: ministries}
}

func (s *MinistryStore) Items() []model.Ministry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.Ministry, len(s.items))
	copy(items, s.items)
	return items
}

func (s *MinistryStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *MinistryStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Options returns the id/label pairs form selects consume.
func (s *MinistryStore) Options() []model.Option {
	return model.MinistryOptions(s.Items())
}

// NameByID resolves a ministry name from the fetched catalog. Returns ""
// for ids the catalog does not know.
func (s *MinistryStore) NameByID(id int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.items {
		if m.ID == id {
			return m.Name
		}
	}
	return ""
}

func (s *MinistryStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	items, err := s.ministries.GetAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		logger.Warn("Ministry refresh failed, keeping stale catalog", zap.Error(err))
		return err
	}
	s.items = items
	return nil
}

// DataTypeStore caches the data type catalog.
type DataTypeStore struct {
	dataTypes *service.DataTypeService

	mu         sync.RWMutex
	items      []model.DataType
	err        string
	loading    bool
	generation uint64
}

func NewDataTypeStore(dataTypes *service.DataTypeService) *DataTypeStore {
	return &DataTypeStore{dataTypes: dataTypes}
}

func (s *DataTypeStore) Items() []model.DataType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.DataType, len(s.items))
	copy(items, s.items)
	return items
}

func (s *DataTypeStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *DataTypeStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *DataTypeStore) Options() []model.Option {
	return model.DataTypeOptions(s.Items())
}

func (s *DataTypeStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	items, err := s.dataTypes.GetAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		logger.Warn("Data type refresh failed, keeping stale catalog", zap.Error(err))
		return err
	}
	s.items = items
	return nil
}
