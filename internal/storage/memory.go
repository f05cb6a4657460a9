package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"neptune/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	tables      map[string]model.TableRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.tables = make(map[string]model.TableRecord)
	return nil
}

func (s *MemoryStore) SaveTable(_ context.Context, record model.TableRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	s.tables[record.ID] = record
	return nil
}

func (s *MemoryStore) GetTable(_ context.Context, id string) (model.TableRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return model.TableRecord{}, false, errors.New("store is not initialized")
	}
	record, ok := s.tables[id]
	return record, ok, nil
}

func (s *MemoryStore) ListTables(_ context.Context) ([]model.TableRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errors.New("store is not initialized")
	}
	records := make([]model.TableRecord, 0, len(s.tables))
	for _, record := range s.tables {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAtUTC == records[j].CreatedAtUTC {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAtUTC > records[j].CreatedAtUTC
	})
	return records, nil
}
