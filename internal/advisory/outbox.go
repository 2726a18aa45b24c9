package advisory

import (
	"sync"

	"github.com/ppiankov/safeharbor/internal/model"
)

// Outbox buffers Shell and Navigator calls produced while a state
// transition is in progress and delivers them later, in order, via Flush.
// Delivering after the caller releases its lock lets shell callbacks
// re-enter the core safely.
type Outbox struct {
	shell Shell
	nav   Navigator

	mu       sync.Mutex
	pending  []func()
	draining bool
}

// NewOutbox wraps shell and nav. Either may be nil.
func NewOutbox(shell Shell, nav Navigator) *Outbox {
	return &Outbox{shell: shell, nav: nav}
}

func (o *Outbox) push(fn func()) {
	o.mu.Lock()
	o.pending = append(o.pending, fn)
	o.mu.Unlock()
}

// Flush delivers buffered calls. If a flush is already running (possibly
// further up this goroutine's stack), the running flush picks up the new
// calls and this one returns immediately.
func (o *Outbox) Flush() {
	o.mu.Lock()
	if o.draining {
		o.mu.Unlock()
		return
	}
	o.draining = true
	for len(o.pending) > 0 {
		batch := o.pending
		o.pending = nil
		o.mu.Unlock()
		for _, fn := range batch {
			fn()
		}
		o.mu.Lock()
	}
	o.draining = false
	o.mu.Unlock()
}

// Len returns the number of undelivered calls.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

func (o *Outbox) OnIndicatorUpdate(tier model.Tier, label, iconKey string) {
	if o.shell == nil {
		return
	}
	o.push(func() { o.shell.OnIndicatorUpdate(tier, label, iconKey) })
}

func (o *Outbox) OnAdvisoryOpen(p Payload, actions []ActionSpec) {
	if o.shell == nil {
		return
	}
	o.push(func() { o.shell.OnAdvisoryOpen(p, actions) })
}

func (o *Outbox) OnAdvisoryClose() {
	if o.shell == nil {
		return
	}
	o.push(func() { o.shell.OnAdvisoryClose() })
}

func (o *Outbox) OnAssistantMessage(text model.RichText) {
	if o.shell == nil {
		return
	}
	o.push(func() { o.shell.OnAssistantMessage(text) })
}

func (o *Outbox) NavigateBack() {
	if o.nav == nil {
		return
	}
	o.push(func() { o.nav.NavigateBack() })
}

func (o *Outbox) NavigateTo(url string) {
	if o.nav == nil {
		return
	}
	o.push(func() { o.nav.NavigateTo(url) })
}
