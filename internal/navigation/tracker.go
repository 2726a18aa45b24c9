package navigation

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/ppiankov/safeharbor/internal/model"
)

// Classifier is the subset of classify.Classifier the tracker needs.
type Classifier interface {
	Classify(rawURL string) model.Verdict
}

// Tracker holds the current navigation record and deduplicates reports.
type Tracker struct {
	mu       sync.Mutex
	classify Classifier
	now      func() time.Time
	current  *model.NavigationRecord
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides time.Now for ObservedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a tracker that classifies through c.
func NewTracker(c Classifier, opts ...Option) *Tracker {
	t := &Tracker{classify: c, now: time.Now}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Report records a navigation. Returns the new record and true, or the
// unchanged current record and false when url equals the current URL.
func (t *Tracker) Report(url string) (model.NavigationRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil && t.current.URL == url {
		return *t.current, false
	}

	v := t.classify.Classify(url)
	rec := model.NavigationRecord{
		URL:        url,
		Domain:     v.Domain,
		Verdict:    v,
		ObservedAt: t.now().UTC(),
	}
	t.current = &rec
	return rec, true
}

// Reclassify runs the classifier again on the current URL and stores the
// fresh verdict. Returns false if nothing has been navigated yet.
func (t *Tracker) Reclassify() (model.NavigationRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return model.NavigationRecord{}, false
	}
	v := t.classify.Classify(t.current.URL)
	t.current.Verdict = v
	t.current.Domain = v.Domain
	return *t.current, true
}

// Current returns the current record, if any.
func (t *Tracker) Current() (model.NavigationRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return model.NavigationRecord{}, false
	}
	return *t.current, true
}

var schemeRe = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*://`)

// NormalizeInput turns address-bar text into a URL: surrounding space is
// trimmed and "https://" is prepended when no scheme is present.
// Empty input returns "".
func NormalizeInput(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	if schemeRe.MatchString(s) {
		return s
	}
	return "https://" + s
}
