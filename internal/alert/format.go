package alert

import (
	"encoding/json"
	"fmt"
)

// FormatPayload builds the webhook body for the given format.
func FormatPayload(format string, event Event) ([]byte, error) {
	switch format {
	case "slack":
		return formatSlack(event)
	default:
		return formatGeneric(event)
	}
}

func formatGeneric(event Event) ([]byte, error) {
	return json.Marshal(event)
}

func formatSlack(event Event) ([]byte, error) {
	payload := map[string]any{
		"text": Summary(event),
		"blocks": []any{
			map[string]any{
				"type": "header",
				"text": map[string]any{
					"type": "plain_text",
					"text": fmt.Sprintf("safeharbor: %s", headline(event.Kind)),
				},
			},
			map[string]any{
				"type": "section",
				"fields": []any{
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Site:* %s", event.Domain)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Rating:* %s", event.Tier)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*When:* %s", event.Timestamp)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Session:* %s", event.SessionID)},
				},
			},
		},
	}
	return json.Marshal(payload)
}

// Summary is a one-line description for chat notifications.
func Summary(event Event) string {
	switch event.Kind {
	case KindUnsafeVisit:
		return fmt.Sprintf("Opened %s, which is rated unsafe.", event.Domain)
	case KindStayedOnUnsafe:
		return fmt.Sprintf("Chose to stay on %s after an unsafe warning.", event.Domain)
	case KindTrustedAnyway:
		return fmt.Sprintf("Trusted %s (rated %s) to enter %s.", event.Domain, event.Tier, fieldOr(event.Detail))
	case KindReturnedToSafety:
		return fmt.Sprintf("Left %s for safety.", event.Domain)
	default:
		return fmt.Sprintf("%s on %s", event.Kind, event.Domain)
	}
}

func headline(k Kind) string {
	switch k {
	case KindUnsafeVisit:
		return "unsafe site opened"
	case KindStayedOnUnsafe:
		return "stayed on unsafe site"
	case KindTrustedAnyway:
		return "unverified site trusted"
	case KindReturnedToSafety:
		return "returned to safety"
	default:
		return string(k)
	}
}

func fieldOr(detail string) string {
	if detail == "" {
		return "personal information"
	}
	return detail
}
