package styling

import (
	"context"
	"fmt"
	"strings"
	"sync"

	chartstyle "chartsmith/internal/styling"
)

// MemoryStore keeps styling records in process memory; used in tests and
// when no database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	charts   map[string]chartstyle.ChartStyling
	messages map[string]chartstyle.ChartStyling
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		charts:   make(map[string]chartstyle.ChartStyling),
		messages: make(map[string]chartstyle.ChartStyling),
	}
}

func (s *MemoryStore) SaveChart(_ context.Context, chartID string, p chartstyle.Patch) error {
	return s.save(s.charts, chartID, "chart_id", p)
}

func (s *MemoryStore) SaveMessage(_ context.Context, messageID string, p chartstyle.Patch) error {
	return s.save(s.messages, messageID, "message_id", p)
}

func (s *MemoryStore) save(m map[string]chartstyle.ChartStyling, id, field string, p chartstyle.Patch) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%s is required", field)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := m[id].Clone()
	cur.Apply(p)
	m[id] = cur
	return nil
}

func (s *MemoryStore) DeleteChart(_ context.Context, chartID string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	id := strings.TrimSpace(chartID)
	if id == "" {
		return fmt.Errorf("chart_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.charts, id)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, chartID string) (chartstyle.ChartStyling, error) {
	if s == nil {
		return chartstyle.ChartStyling{}, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cur, ok := s.charts[strings.TrimSpace(chartID)]
	if !ok {
		return chartstyle.ChartStyling{}, ErrNotFound
	}
	return cur.Clone(), nil
}
