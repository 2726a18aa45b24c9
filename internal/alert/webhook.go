package alert

import (
	"bytes"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultTimeout = 5 * time.Second
	maxRetries     = 3
	userAgent      = "safeharbor-caregiver-alert/1"
)

// retryDelay is the pause before the given retry attempt.
var retryDelay = func(attempt int) time.Duration {
	return time.Duration(attempt) * time.Second
}

// Send posts an alert event to a caregiver's webhook. 5xx responses and
// transport errors are retried; a 4xx is final. Each request carries the
// event kind and session in headers so receivers can route without
// parsing the body.
func Send(cfg Config, event Event) error {
	body, err := FormatPayload(cfg.Format, event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay(attempt))
		}

		req, err := http.NewRequest(http.MethodPost, cfg.URL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("X-SafeHarbor-Event", string(event.Kind))
		if event.SessionID != "" {
			req.Header.Set("X-SafeHarbor-Session", event.SessionID)
		}
		for k, v := range cfg.Headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("deliver %s alert for %s: %w", event.Kind, event.Domain, err)
			continue
		}
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode == http.StatusGone:
			return fmt.Errorf("caregiver webhook %s is gone (HTTP 410); remove it from alerts", cfg.URL)
		case resp.StatusCode < 500:
			return fmt.Errorf("caregiver webhook rejected %s alert: HTTP %d", event.Kind, resp.StatusCode)
		}
		lastErr = fmt.Errorf("caregiver webhook unavailable: HTTP %d", resp.StatusCode)
	}
	return fmt.Errorf("%s alert not delivered after %d attempts: %w", event.Kind, maxRetries, lastErr)
}
