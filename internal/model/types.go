package model

import "time"

// Tier is the coarse safety classification of a domain.
type Tier string

const (
	TierSafe    Tier = "safe"
	TierCaution Tier = "caution"
	TierUnsafe  Tier = "unsafe"
	TierPending Tier = "pending"
)

// Severity ranks tiers for advisory preemption. Higher = more urgent.
// Safe and Pending share the lowest rank.
func (t Tier) Severity() int {
	switch t {
	case TierUnsafe:
		return 2
	case TierCaution:
		return 1
	default:
		return 0
	}
}

// Label returns the indicator text shown in the chrome.
func (t Tier) Label() string {
	switch t {
	case TierSafe:
		return "Safe"
	case TierCaution:
		return "Caution"
	case TierUnsafe:
		return "Unsafe"
	default:
		return "Checking..."
	}
}

// IconKey returns the shell icon identifier for the tier.
func (t Tier) IconKey() string {
	switch t {
	case TierSafe:
		return "icon-shield"
	case TierCaution:
		return "icon-warning"
	case TierUnsafe:
		return "icon-alert"
	default:
		return "icon-search"
	}
}

// ParseTier maps a string to a Tier. Unknown values map to Pending.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierSafe, TierCaution, TierUnsafe:
		return Tier(s)
	default:
		return TierPending
	}
}

// RecommendedAction is the classifier's advice attached to a verdict.
type RecommendedAction string

const (
	ContinueAllowed    RecommendedAction = "continue_allowed"
	DiscourageStrongly RecommendedAction = "discourage_strongly"
)

// RecommendedFor returns the recommendation implied by a tier.
func RecommendedFor(t Tier) RecommendedAction {
	if t == TierUnsafe {
		return DiscourageStrongly
	}
	return ContinueAllowed
}

// Verdict is the classification outcome for one URL.
// Immutable; recomputed on every classification.
type Verdict struct {
	Tier        Tier              `json:"tier"`
	Domain      string            `json:"domain"`
	Rationale   string            `json:"rationale"`
	Recommended RecommendedAction `json:"recommended"`
}

// NavigationRecord is the classified state of the current page.
type NavigationRecord struct {
	URL        string    `json:"url"`
	Domain     string    `json:"domain"`
	Verdict    Verdict   `json:"verdict"`
	ObservedAt time.Time `json:"observed_at"`
}
