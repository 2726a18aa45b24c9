package sentinel

import (
	"strings"
	"sync"

	"github.com/ppiankov/safeharbor/internal/model"
)

// Sentinel classifies focused input fields and emits at most one
// SensitiveFieldEvent per navigation.
type Sentinel struct {
	mu     sync.Mutex
	domain string
	armed  bool
	fired  bool
}

// New returns a disarmed sentinel. Call Reset on every navigation.
func New() *Sentinel {
	return &Sentinel{}
}

// Reset re-opens the latch for a new navigation. Only armed sentinels
// emit events; the caller arms it for content that is not trusted.
func (s *Sentinel) Reset(domain string, armed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domain = domain
	s.armed = armed
	s.fired = false
}

// OnFieldFocus returns an event for a sensitive field, or nil when the
// field is not sensitive, the sentinel is disarmed, or it already fired.
func (s *Sentinel) OnFieldFocus(fd model.FieldDescriptor) *model.SensitiveFieldEvent {
	p, ok := Match(fd)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.armed || s.fired {
		return nil
	}
	s.fired = true

	return &model.SensitiveFieldEvent{
		Kind:    p.Kind,
		Pattern: p.Name,
		Domain:  s.domain,
		Field:   fd,
	}
}

// Fired reports whether the latch is closed for the current navigation.
func (s *Sentinel) Fired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}

// Match classifies a field descriptor against the ordered patterns.
// Kinds outside the known set are reported as generic.
func Match(fd model.FieldDescriptor) (Pattern, bool) {
	text := haystack(fd)
	if text == "" {
		return Pattern{}, false
	}
	for _, p := range patterns {
		if p.re.MatchString(text) {
			if !knownKind(p.Kind) {
				p.Kind = model.FieldGeneric
			}
			return p, true
		}
	}
	return Pattern{}, false
}

func haystack(fd model.FieldDescriptor) string {
	parts := []string{fd.Type, fd.Name, fd.ID, fd.Autocomplete, fd.Label, fd.Placeholder}
	var b strings.Builder
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	// Underscores count as separators so snake_case names split into words.
	return strings.ReplaceAll(strings.ToLower(b.String()), "_", "-")
}

func knownKind(k model.FieldKind) bool {
	switch k {
	case model.FieldPassword, model.FieldEmail, model.FieldPhone, model.FieldFinancial, model.FieldGeneric:
		return true
	}
	return false
}
