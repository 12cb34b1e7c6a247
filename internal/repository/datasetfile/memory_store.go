package datasetfile

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore keeps uploaded files in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]File
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string]File)}
}

func (s *MemoryStore) Put(_ context.Context, datasetID string, f File) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	datasetID = strings.TrimSpace(datasetID)
	if datasetID == "" {
		return fmt.Errorf("dataset_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[datasetID] = File{
		Name:    f.Name,
		Content: append([]byte(nil), f.Content...),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, datasetID string) (File, error) {
	if s == nil {
		return File{}, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[strings.TrimSpace(datasetID)]
	if !ok {
		return File{}, ErrNotFound
	}
	return File{Name: f.Name, Content: append([]byte(nil), f.Content...)}, nil
}

func (s *MemoryStore) Delete(_ context.Context, datasetID string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, strings.TrimSpace(datasetID))
	return nil
}
