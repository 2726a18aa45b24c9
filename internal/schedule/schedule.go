package schedule

import (
	"sync"
	"time"
)

// Handle cancels a scheduled continuation. Cancel reports whether the
// continuation was stopped before it ran.
type Handle interface {
	Cancel() bool
}

// Scheduler runs continuations after a delay.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// Timer is a Scheduler backed by time.AfterFunc.
type Timer struct{}

// After schedules fn on its own goroutine after d.
func (Timer) After(d time.Duration, fn func()) Handle {
	return timerHandle{time.AfterFunc(d, fn)}
}

type timerHandle struct{ t *time.Timer }

func (h timerHandle) Cancel() bool { return h.t.Stop() }

// Group tracks handles so they can be cancelled together, e.g. every
// continuation that belongs to the current page.
type Group struct {
	mu      sync.Mutex
	handles []Handle
}

// Add registers h with the group.
func (g *Group) Add(h Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handles = append(g.handles, h)
}

// After schedules fn on s and tracks it in the group until it runs.
// Handles of continuations that already ran are dropped.
func (g *Group) After(s Scheduler, d time.Duration, fn func()) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	var h Handle
	h = s.After(d, func() {
		g.remove(h)
		fn()
	})
	g.handles = append(g.handles, h)
	return h
}

func (g *Group) remove(h Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, x := range g.handles {
		if x == h {
			g.handles = append(g.handles[:i], g.handles[i+1:]...)
			return
		}
	}
}

// CancelAll cancels every registered handle and empties the group.
// Returns how many were stopped before running.
func (g *Group) CancelAll() int {
	g.mu.Lock()
	handles := g.handles
	g.handles = nil
	g.mu.Unlock()

	stopped := 0
	for _, h := range handles {
		if h.Cancel() {
			stopped++
		}
	}
	return stopped
}

// Len returns the number of registered handles.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.handles)
}
