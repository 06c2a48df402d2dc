package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"resumelab/internal/types"
)

// MemoryStore keeps resume records in process memory. Contents are lost
// on restart; suitable for tests and single-shot CLI runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]types.ResumeRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]types.ResumeRecord)}
}

func (s *MemoryStore) Save(ctx context.Context, record types.ResumeRecord) (types.ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return types.ResumeRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = newID()
		record.CreatedAt = now
	} else {
		existing, ok := s.records[record.ID]
		if !ok {
			return types.ResumeRecord{}, notFound(record.ID)
		}
		record.CreatedAt = existing.CreatedAt
	}
	record.UpdatedAt = now

	s.records[record.ID] = record
	return record, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (types.ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return types.ResumeRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return types.ResumeRecord{}, notFound(id)
	}
	return record, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]types.ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]types.ResumeRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].UpdatedAt.Equal(records[j].UpdatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return notFound(id)
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
