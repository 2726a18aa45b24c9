// Package browser holds the pieces of a minimal embedded-browser shell
// shared by the terminal session and the scenario runner.
package browser

import (
	"sync"

	"github.com/ppiankov/safeharbor/internal/advisory"
)

// Reporter receives the navigations the shell performs.
type Reporter interface {
	ReportNavigation(url string)
}

// History is a back stack of visited URLs. It implements
// advisory.Navigator by moving through the stack and reporting the
// resulting page to the session, the way a browser does.
type History struct {
	mu       sync.Mutex
	stack    []string
	reporter Reporter
	next     advisory.Navigator
}

// NewHistory creates a history that reports to r and forwards each
// navigation call to next (which may be nil).
func NewHistory(r Reporter, next advisory.Navigator) *History {
	return &History{reporter: r, next: next}
}

// SetReporter replaces the reporter. Used when the session is created
// after the history.
func (h *History) SetReporter(r Reporter) {
	h.mu.Lock()
	h.reporter = r
	h.mu.Unlock()
}

// Visit pushes url and reports it. Visiting the current URL again does
// not grow the stack.
func (h *History) Visit(url string) {
	h.mu.Lock()
	if n := len(h.stack); n == 0 || h.stack[n-1] != url {
		h.stack = append(h.stack, url)
	}
	r := h.reporter
	h.mu.Unlock()

	if r != nil {
		r.ReportNavigation(url)
	}
}

// Current returns the URL on top of the stack.
func (h *History) Current() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		return "", false
	}
	return h.stack[len(h.stack)-1], true
}

// Len returns the stack depth.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}

// NavigateBack pops the current page and reports the previous one.
// With nothing to go back to it does nothing.
func (h *History) NavigateBack() {
	if h.next != nil {
		h.next.NavigateBack()
	}

	h.mu.Lock()
	if len(h.stack) < 2 {
		h.mu.Unlock()
		return
	}
	h.stack = h.stack[:len(h.stack)-1]
	prev := h.stack[len(h.stack)-1]
	r := h.reporter
	h.mu.Unlock()

	if r != nil {
		r.ReportNavigation(prev)
	}
}

// NavigateTo visits url.
func (h *History) NavigateTo(url string) {
	if h.next != nil {
		h.next.NavigateTo(url)
	}
	h.Visit(url)
}
