package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/safeharbor/internal/model"
)

// ReplayFilter holds filtering criteria for session replay.
type ReplayFilter struct {
	SessionID string
	From      time.Time // zero value = no lower bound
	To        time.Time // zero value = no upper bound
}

// ReplaySummary counts what happened in a replayed session.
type ReplaySummary struct {
	Total          int    `json:"total"`
	Navigations    int    `json:"navigations"`
	SafeCount      int    `json:"safe_count"`
	CautionCount   int    `json:"caution_count"`
	UnsafeCount    int    `json:"unsafe_count"`
	PendingCount   int    `json:"pending_count"`
	FieldCount     int    `json:"field_count"`
	AdvisoryCount  int    `json:"advisory_count"`
	ActionCount    int    `json:"action_count"`
	LeftCount      int    `json:"left_count"`
	FirstTimestamp string `json:"first_timestamp"`
	LastTimestamp  string `json:"last_timestamp"`
	WorstTier      string `json:"worst_tier"`
}

// ReplayResult holds filtered entries and summary for a session replay.
type ReplayResult struct {
	SessionID string        `json:"session_id"`
	Entries   []AuditEntry  `json:"entries"`
	Summary   ReplaySummary `json:"summary"`
}

// Replay reads the audit log and returns entries matching the filter.
func Replay(path string, filter ReplayFilter) (*ReplayResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	result := &ReplayResult{SessionID: filter.SessionID}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry AuditEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue // skip malformed lines
		}

		if entry.SessionID != filter.SessionID {
			continue
		}

		if !filter.From.IsZero() || !filter.To.IsZero() {
			ts, err := time.Parse(TimestampFormat, entry.Timestamp)
			if err != nil {
				continue
			}
			if !filter.From.IsZero() && ts.Before(filter.From) {
				continue
			}
			if !filter.To.IsZero() && ts.After(filter.To) {
				continue
			}
		}

		result.Entries = append(result.Entries, entry)
		updateSummary(&result.Summary, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	return result, nil
}

func updateSummary(s *ReplaySummary, entry AuditEntry) {
	s.Total++

	switch entry.Event {
	case EventNavigation:
		s.Navigations++
		tier := model.ParseTier(entry.Tier)
		switch tier {
		case model.TierSafe:
			s.SafeCount++
		case model.TierCaution:
			s.CautionCount++
		case model.TierUnsafe:
			s.UnsafeCount++
		default:
			s.PendingCount++
		}
		if s.WorstTier == "" || rank(tier) > rank(model.ParseTier(s.WorstTier)) {
			s.WorstTier = string(tier)
		}
	case EventFieldFocus:
		s.FieldCount++
	case EventAdvisoryOpen:
		s.AdvisoryCount++
	case EventAction:
		s.ActionCount++
	case EventNavigateAway:
		s.LeftCount++
	}

	if s.FirstTimestamp == "" {
		s.FirstTimestamp = entry.Timestamp
	}
	s.LastTimestamp = entry.Timestamp
}

// rank orders tiers for the summary; pending sits between safe and caution.
func rank(t model.Tier) int {
	switch t {
	case model.TierUnsafe:
		return 3
	case model.TierCaution:
		return 2
	case model.TierPending:
		return 1
	default:
		return 0
	}
}

// Tail returns the last n entries of the log. Malformed lines are skipped.
func Tail(path string, n int) ([]AuditEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var entries []AuditEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry AuditEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
		if n > 0 && len(entries) > n {
			entries = entries[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	return entries, nil
}
