package audit

// Event names what an audit entry records.
type Event string

const (
	EventNavigation    Event = "navigation"
	EventFieldFocus    Event = "field_focus"
	EventAdvisoryOpen  Event = "advisory_open"
	EventAdvisoryClose Event = "advisory_close"
	EventAction        Event = "action"
	EventMessage       Event = "message"
	EventNavigateAway  Event = "navigate_away"
)

// AuditEntry is one line in the hash-chained JSONL audit log.
// Flat struct fields keep json.Marshal output stable, so line hashes are
// reproducible.
type AuditEntry struct {
	Timestamp string `json:"ts"`
	SessionID string `json:"session_id"`
	Event     Event  `json:"event"`
	Domain    string `json:"domain,omitempty"`
	Tier      string `json:"tier,omitempty"`
	Trigger   string `json:"trigger,omitempty"`
	Detail    string `json:"detail,omitempty"`
	ListHash  string `json:"list_hash,omitempty"`
	PrevHash  string `json:"prev_hash"`
}
