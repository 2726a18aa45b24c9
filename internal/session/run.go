package session

import (
	"context"

	"github.com/ppiankov/safeharbor/internal/advisory"
	"github.com/ppiankov/safeharbor/internal/model"
)

// Inbox carries inbound events, one channel per kind. Nil channels are
// never read.
type Inbox struct {
	Navigations <-chan string
	FieldFocus  <-chan model.FieldDescriptor
	Messages    <-chan string
	Actions     <-chan advisory.Action
}

// Run dispatches events from in until ctx is done or every channel is
// closed. Returns ctx.Err() on cancellation, nil when the inbox drains.
func (s *Session) Run(ctx context.Context, in Inbox) error {
	for in.Navigations != nil || in.FieldFocus != nil || in.Messages != nil || in.Actions != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case url, ok := <-in.Navigations:
			if !ok {
				in.Navigations = nil
				continue
			}
			s.ReportNavigation(url)

		case fd, ok := <-in.FieldFocus:
			if !ok {
				in.FieldFocus = nil
				continue
			}
			s.ReportFieldFocus(fd)

		case text, ok := <-in.Messages:
			if !ok {
				in.Messages = nil
				continue
			}
			s.SubmitUserMessage(text)

		case a, ok := <-in.Actions:
			if !ok {
				in.Actions = nil
				continue
			}
			s.Act(a)
		}
	}
	return nil
}
