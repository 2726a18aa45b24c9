package advisory

import (
	"sync"

	"github.com/ppiankov/safeharbor/internal/model"
)

// EventKind names a recorded shell or navigator call.
type EventKind string

const (
	EventIndicator EventKind = "indicator"
	EventOpen      EventKind = "advisory_open"
	EventClose     EventKind = "advisory_close"
	EventMessage   EventKind = "assistant_message"
	EventBack      EventKind = "navigate_back"
	EventNavigate  EventKind = "navigate_to"
)

// Event is one recorded call.
type Event struct {
	Kind    EventKind    `json:"kind"`
	Tier    model.Tier   `json:"tier,omitempty"`
	Label   string       `json:"label,omitempty"`
	IconKey string       `json:"icon_key,omitempty"`
	Payload *Payload     `json:"payload,omitempty"`
	Actions []ActionSpec `json:"actions,omitempty"`
	Text    string       `json:"text,omitempty"`
	URL     string       `json:"url,omitempty"`
}

// Recorder is a Shell and Navigator that records every call. Used by the
// scenario runner and tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) OnIndicatorUpdate(tier model.Tier, label, iconKey string) {
	r.add(Event{Kind: EventIndicator, Tier: tier, Label: label, IconKey: iconKey})
}

func (r *Recorder) OnAdvisoryOpen(p Payload, actions []ActionSpec) {
	r.add(Event{Kind: EventOpen, Tier: p.Tier, Payload: &p, Actions: actions})
}

func (r *Recorder) OnAdvisoryClose() {
	r.add(Event{Kind: EventClose})
}

func (r *Recorder) OnAssistantMessage(text model.RichText) {
	r.add(Event{Kind: EventMessage, Text: string(text)})
}

func (r *Recorder) NavigateBack() {
	r.add(Event{Kind: EventBack})
}

func (r *Recorder) NavigateTo(url string) {
	r.add(Event{Kind: EventNavigate, URL: url})
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Last returns the most recent event of kind.
func (r *Recorder) Last(kind EventKind) (Event, bool) {
	events := r.Events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == kind {
			return events[i], true
		}
	}
	return Event{}, false
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// ActionIDs returns the IDs of specs, in order.
func ActionIDs(specs []ActionSpec) []Action {
	ids := make([]Action, len(specs))
	for i, s := range specs {
		ids[i] = s.ID
	}
	return ids
}
