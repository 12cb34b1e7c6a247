package styling

import (
	"context"
	"sync"
)

// Registry owns the live edit sessions, one Controller per chart id. It
// is an explicit service object passed to every view that needs it, not
// ambient shared state: populated on first session, invalidated on Close.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Controller
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Controller)}
}

// Get returns the open session for a chart, if any.
func (r *Registry) Get(chartID string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.sessions[chartID]
	return c, ok
}

// GetOrCreate returns the open session for a chart, creating it with
// newSession on first use.
func (r *Registry) GetOrCreate(chartID string, newSession func() *Controller) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.sessions[chartID]; ok {
		return c
	}
	c := newSession()
	r.sessions[chartID] = c
	return c
}

// Close tears down one session, flushing pending edits first.
func (r *Registry) Close(ctx context.Context, chartID string) error {
	r.mu.Lock()
	c, ok := r.sessions[chartID]
	delete(r.sessions, chartID)
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return c.Close(ctx)
}

// CloseAll tears down every session; used on server shutdown.
func (r *Registry) CloseAll(ctx context.Context) error {
	r.mu.Lock()
	sessions := make([]*Controller, 0, len(r.sessions))
	for _, c := range r.sessions {
		sessions = append(sessions, c)
	}
	r.sessions = make(map[string]*Controller)
	r.mu.Unlock()

	var firstErr error
	for _, c := range sessions {
		if err := c.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
