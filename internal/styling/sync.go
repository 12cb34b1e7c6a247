package styling

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultQuiet is the debounce quiescence window between the last edit
// and the persistence flush.
const DefaultQuiet = 2 * time.Second

// Sink is one external destination for flushed styling edits, e.g. the
// standalone chart record or the chat-message record carrying the chart.
type Sink struct {
	Name string
	Save func(ctx context.Context, p Patch) error
}

// Controller reconciles the three styling authorities of one chart:
// the computed default, the persisted value, and the live in-session
// value. Edits land on Live immediately and accumulate in a pending
// buffer; a debounce timer flushes the buffer to every sink after the
// quiescence window, and Close flushes synchronously on teardown so
// edits are never silently dropped.
type Controller struct {
	mu         sync.Mutex
	live       ChartStyling
	pending    Patch
	hasPending bool
	timer      *time.Timer
	quiet      time.Duration
	sinks      []Sink
	// snapshot of the last persisted value seen, for external-change
	// detection by value rather than by reference
	persistedSnap string
	closed        bool
}

// NewController starts an edit session over an initial (resolved) value.
// quiet <= 0 selects DefaultQuiet.
func NewController(initial ChartStyling, quiet time.Duration, sinks ...Sink) *Controller {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Controller{
		live:          initial.Clone(),
		quiet:         quiet,
		sinks:         sinks,
		persistedSnap: initial.Snapshot(),
	}
}

// Live returns the value currently shown to the user.
func (c *Controller) Live() ChartStyling {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live.Clone()
}

// HasPending reports whether unsaved work exists. The buffer is the
// single source of truth for that question.
func (c *Controller) HasPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasPending
}

// Apply records one edit: Live updates immediately, the patch joins the
// pending buffer, and the debounce timer restarts.
func (c *Controller) Apply(p Patch) {
	if p.IsEmpty() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.live.Apply(p)
	c.pending.Merge(p)
	c.hasPending = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.quiet, func() {
		// Timer goroutine; context is detached from any request.
		_ = c.Flush(context.Background())
	})
}

// AdoptPersisted folds in a persisted value pushed by an external actor
// (the same chart edited from another view). The change is detected by
// snapshot comparison; it reaches Live only when no local edit is
// pending, because an in-flight local edit always wins.
func (c *Controller) AdoptPersisted(s ChartStyling) bool {
	snap := s.Snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || snap == c.persistedSnap || c.hasPending {
		return false
	}
	c.live = s.Clone()
	c.persistedSnap = snap
	return true
}

// Flush writes the pending buffer to every sink and clears it. Both the
// debounce timer and the teardown path call this same function. On any
// sink failure the buffer is retained for a later attempt: losing an
// edit is worse than a delayed write.
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.Lock()
	if !c.hasPending {
		c.mu.Unlock()
		return nil
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	patch := c.pending
	c.pending = Patch{}
	c.hasPending = false
	snap := c.live.Snapshot()
	c.mu.Unlock()

	var firstErr error
	for _, sink := range c.sinks {
		if sink.Save == nil {
			continue
		}
		if err := sink.Save(ctx, patch); err != nil {
			log.Printf("styling flush: sink %s failed: %v", sink.Name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if firstErr != nil {
		// Put the failed patch back under anything the user typed since.
		restored := patch
		restored.Merge(c.pending)
		c.pending = restored
		c.hasPending = true
		return firstErr
	}
	c.persistedSnap = snap
	return nil
}

// Close tears the session down: the timer is cancelled and any pending
// buffer is flushed synchronously before Close returns.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	return c.Flush(ctx)
}
