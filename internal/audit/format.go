package audit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const separator = "──────────────────────────────────────────────────────────────────"

// FormatTimeline renders a ReplayResult as a human-readable text timeline.
func FormatTimeline(result *ReplayResult) string {
	if len(result.Entries) == 0 {
		return fmt.Sprintf("Session: %s | No entries found.\n", result.SessionID)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s | %s-%s UTC\n", result.SessionID,
		formatDateRange(result.Summary.FirstTimestamp), formatTimeOnly(result.Summary.LastTimestamp))
	b.WriteString(separator + "\n")

	for _, e := range result.Entries {
		fmt.Fprintf(&b, "%-10s %-15s %-8s %-32s %s\n",
			formatTimeOnly(e.Timestamp),
			e.Event,
			strings.ToUpper(e.Tier),
			truncate(e.Domain, 32),
			truncate(detailOf(e), 40))
	}

	b.WriteString(separator + "\n")
	b.WriteString(formatSummary(result.Summary))

	return b.String()
}

// FormatEntry renders one entry as a single timeline line with its date.
func FormatEntry(e AuditEntry) string {
	return fmt.Sprintf("%s  %-15s %-8s %s %s",
		formatDateRange(e.Timestamp), e.Event, strings.ToUpper(e.Tier), e.Domain, detailOf(e))
}

// FormatJSON renders a ReplayResult as indented JSON.
func FormatJSON(result *ReplayResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal replay result: %w", err)
	}
	return string(data), nil
}

func detailOf(e AuditEntry) string {
	if e.Trigger != "" && e.Detail != "" {
		return e.Trigger + ": " + e.Detail
	}
	if e.Trigger != "" {
		return e.Trigger
	}
	return e.Detail
}

func formatDateRange(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatTimeOnly(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

func formatSummary(s ReplaySummary) string {
	parts := []string{fmt.Sprintf("%d pages", s.Navigations)}
	counts := []struct {
		n     int
		label string
	}{
		{s.SafeCount, "safe"},
		{s.CautionCount, "caution"},
		{s.UnsafeCount, "unsafe"},
		{s.PendingCount, "unchecked"},
		{s.FieldCount, "sensitive fields"},
		{s.AdvisoryCount, "advisories"},
		{s.LeftCount, "left for safety"},
	}
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.label))
		}
	}

	worst := s.WorstTier
	if worst == "" {
		worst = "none"
	}
	return fmt.Sprintf("Summary: %s | Worst: %s\n", strings.Join(parts, ", "), worst)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
