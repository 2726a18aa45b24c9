// Package alert notifies a caregiver's webhook when the user runs into
// trouble: an unsafe page, staying on one, or trusting an unverified site.
package alert

import "time"

// Kind names what happened.
type Kind string

const (
	KindUnsafeVisit      Kind = "unsafe_visit"
	KindStayedOnUnsafe   Kind = "stayed_on_unsafe"
	KindTrustedAnyway    Kind = "trusted_anyway"
	KindReturnedToSafety Kind = "returned_to_safety"
)

// Config defines a webhook alert destination.
type Config struct {
	URL     string            `yaml:"url"     json:"url"`
	Format  string            `yaml:"format"  json:"format"` // "generic", "slack"
	Events  []Kind            `yaml:"events"  json:"events"`
	Headers map[string]string `yaml:"headers" json:"headers"`
	// Timeout bounds each delivery attempt. Zero uses the default.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// Event is the payload sent to webhook endpoints.
type Event struct {
	Timestamp string `json:"timestamp"`
	SessionID string `json:"session_id"`
	Kind      Kind   `json:"kind"`
	Domain    string `json:"domain"`
	Tier      string `json:"tier"`
	Detail    string `json:"detail,omitempty"`
	ListHash  string `json:"list_hash,omitempty"`
}
