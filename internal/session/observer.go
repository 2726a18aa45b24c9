package session

import (
	"github.com/ppiankov/safeharbor/internal/advisory"
	"github.com/ppiankov/safeharbor/internal/audit"
	"github.com/ppiankov/safeharbor/internal/model"
)

// observer sits between the controller and the outbox. It audits and
// counts what the controller decides, in decision order, then buffers the
// call for delivery. Runs inside a step.
type observer struct {
	s    *Session
	next *advisory.Outbox
}

func (o *observer) OnIndicatorUpdate(tier model.Tier, label, iconKey string) {
	o.next.OnIndicatorUpdate(tier, label, iconKey)
}

func (o *observer) OnAdvisoryOpen(p advisory.Payload, actions []advisory.ActionSpec) {
	o.s.logger.Info("advisory", "trigger", p.Trigger, "tier", p.Tier, "domain", p.Domain)
	o.s.metrics.AdvisoryOpened(string(p.Trigger), string(p.Tier))
	o.s.record(audit.AuditEntry{
		Event:   audit.EventAdvisoryOpen,
		Domain:  p.Domain,
		Tier:    string(p.Tier),
		Trigger: string(p.Trigger),
		Detail:  p.Title,
	})
	o.next.OnAdvisoryOpen(p, actions)
}

func (o *observer) OnAdvisoryClose() {
	o.s.record(audit.AuditEntry{Event: audit.EventAdvisoryClose})
	o.next.OnAdvisoryClose()
}

func (o *observer) OnAssistantMessage(text model.RichText) {
	o.next.OnAssistantMessage(text)
}

func (o *observer) NavigateBack() {
	o.s.record(audit.AuditEntry{Event: audit.EventNavigateAway, Detail: "back"})
	o.next.NavigateBack()
}

func (o *observer) NavigateTo(url string) {
	o.s.record(audit.AuditEntry{Event: audit.EventNavigateAway, Detail: url})
	o.next.NavigateTo(url)
}
