package advisory

import (
	"log/slog"
	"time"

	"github.com/ppiankov/safeharbor/internal/logging"
	"github.com/ppiankov/safeharbor/internal/model"
	"github.com/ppiankov/safeharbor/internal/schedule"
)

// DefaultSafeHomeURL is where "return to safety" goes from an unsafe page.
const DefaultSafeHomeURL = "https://www.google.com"

// Shell renders what the controller decides.
type Shell interface {
	OnIndicatorUpdate(tier model.Tier, label, iconKey string)
	OnAdvisoryOpen(p Payload, actions []ActionSpec)
	OnAdvisoryClose()
	OnAssistantMessage(text model.RichText)
}

// Navigator moves the embedded content on the controller's behalf.
type Navigator interface {
	NavigateBack()
	NavigateTo(url string)
}

// Outcome is how a request for an advisory was resolved.
type Outcome string

const (
	Opened    Outcome = "opened"
	Preempted Outcome = "preempted"
	Queued    Outcome = "queued"
	Dropped   Outcome = "dropped"
)

// Config wires a Controller.
type Config struct {
	Shell     Shell
	Navigator Navigator
	Scheduler schedule.Scheduler
	// RevealDelay stages navigation advisories after the indicator update.
	// Zero presents immediately.
	RevealDelay time.Duration
	SafeHomeURL string
	// Recheck re-classifies the current page for "check this site now".
	Recheck func() (model.Verdict, bool)
	// Serialize runs scheduled continuations inside the owner's critical
	// section. Defaults to calling the function directly.
	Serialize func(func())
	Logger    *slog.Logger
}

// Controller is the advisory state machine. It is not safe for concurrent
// use; the owner serializes calls (see Config.Serialize for continuations).
type Controller struct {
	cfg Config
	log *slog.Logger

	phase      model.Phase
	base       model.Phase
	verdict    model.Verdict
	open       *request
	queued     *request
	suppressed bool
	reveal     schedule.Handle
	gen        uint64
}

// New creates a Controller in the Idle phase.
func New(cfg Config) *Controller {
	if cfg.Scheduler == nil {
		cfg.Scheduler = schedule.Timer{}
	}
	if cfg.SafeHomeURL == "" {
		cfg.SafeHomeURL = DefaultSafeHomeURL
	}
	if cfg.Serialize == nil {
		cfg.Serialize = func(f func()) { f() }
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Shell == nil {
		cfg.Shell = nopShell{}
	}
	if cfg.Navigator == nil {
		cfg.Navigator = nopNavigator{}
	}
	return &Controller{
		cfg:   cfg,
		log:   cfg.Logger,
		phase: model.PhaseIdle,
		base:  model.PhaseIdle,
	}
}

// State returns a snapshot of the controller.
func (c *Controller) State() model.AdvisoryState {
	st := model.AdvisoryState{Phase: c.phase}
	if c.open != nil {
		st.Verdict = c.open.verdict
		st.Trigger = c.open.trigger
	}
	return st
}

// Open returns the payload and actions of the presented advisory.
func (c *Controller) Open() (Payload, []ActionSpec, bool) {
	if c.open == nil {
		return Payload{}, nil, false
	}
	return c.open.payload(), c.open.actions(), true
}

// QueuedTrigger returns the trigger waiting behind the open advisory.
func (c *Controller) QueuedTrigger() (model.Trigger, bool) {
	if c.queued == nil {
		return "", false
	}
	return c.queued.trigger, true
}

// Suppressed reports whether field advisories are off for this navigation.
func (c *Controller) Suppressed() bool {
	return c.suppressed
}

// RevealPending reports whether a staged navigation advisory is scheduled.
func (c *Controller) RevealPending() bool {
	return c.reveal != nil
}

// Navigate handles a new classified page. Anything tied to the previous
// page (staged reveal, open or queued advisory, suppression) is discarded.
func (c *Controller) Navigate(rec model.NavigationRecord) {
	c.gen++
	c.cancelReveal()
	c.queued = nil
	c.suppressed = false
	if c.open != nil {
		c.open = nil
		c.cfg.Shell.OnAdvisoryClose()
	}

	c.verdict = rec.Verdict
	c.base = model.PhaseIndicating
	c.transition(model.PhaseIndicating)
	c.cfg.Shell.OnIndicatorUpdate(rec.Verdict.Tier, rec.Verdict.Tier.Label(), rec.Verdict.Tier.IconKey())

	if rec.Verdict.Tier == model.TierSafe {
		return
	}

	req := request{verdict: rec.Verdict, trigger: model.TriggerNavigation}
	if c.cfg.RevealDelay <= 0 {
		c.request(req)
		return
	}

	gen := c.gen
	c.reveal = c.cfg.Scheduler.After(c.cfg.RevealDelay, func() {
		c.cfg.Serialize(func() {
			// Stop can lose the race with a timer that already fired.
			if c.gen != gen {
				return
			}
			c.reveal = nil
			c.request(req)
		})
	})
}

// FieldEvent asks for a disclosure-risk advisory against the current
// verdict. Suppressed events are dropped.
func (c *Controller) FieldEvent(ev model.SensitiveFieldEvent) Outcome {
	v := c.verdict
	if v.Tier == "" {
		v = model.Verdict{Tier: model.TierPending, Domain: ev.Domain, Recommended: model.ContinueAllowed}
	}
	return c.FieldEventWithVerdict(ev, v)
}

// FieldEventWithVerdict is FieldEvent against an explicit verdict.
func (c *Controller) FieldEventWithVerdict(ev model.SensitiveFieldEvent, v model.Verdict) Outcome {
	if c.suppressed {
		c.log.Debug("field advisory suppressed", "domain", ev.Domain, "kind", ev.Kind)
		return Dropped
	}
	return c.request(request{verdict: v, trigger: model.TriggerField, field: ev.Kind})
}

// RequestReport asks for the navigation advisory of the current verdict,
// including the site report for safe pages.
func (c *Controller) RequestReport() Outcome {
	if c.phase == model.PhaseIdle {
		return Dropped
	}
	return c.request(request{verdict: c.verdict, trigger: model.TriggerNavigation})
}

// Act applies a button press to the open advisory. Returns false if no
// advisory is open or the action is not offered by it.
func (c *Controller) Act(a Action) bool {
	if c.open == nil {
		return false
	}
	r := *c.open
	if a != ActionDismiss && !offers(r.actions(), a) {
		return false
	}

	c.open = nil
	c.transition(model.PhaseDismissed)
	c.cfg.Shell.OnAdvisoryClose()
	c.transition(c.base)

	switch a {
	case ActionReturnToSafety:
		c.queued = nil
		c.cancelReveal()
		if r.verdict.Tier == model.TierUnsafe {
			c.cfg.Navigator.NavigateTo(c.cfg.SafeHomeURL)
		} else {
			c.cfg.Navigator.NavigateBack()
		}

	case ActionCheckSiteNow:
		v, ok := c.recheck()
		if !ok {
			c.promoteQueued()
			return true
		}
		if v.Tier != c.verdict.Tier {
			c.cfg.Shell.OnIndicatorUpdate(v.Tier, v.Tier.Label(), v.Tier.IconKey())
		}
		c.verdict = v
		c.cancelReveal()
		c.queued = nil
		c.present(request{verdict: v, trigger: model.TriggerNavigation})

	case ActionTrustAndContinue:
		c.suppressed = true
		c.promoteQueued()

	default:
		c.promoteQueued()
	}
	return true
}

// request applies the no-nesting rule: a strictly more severe verdict
// preempts, a different trigger waits in the single queue slot (newest
// wins), anything else is dropped.
func (c *Controller) request(r request) Outcome {
	if c.open == nil {
		c.present(r)
		return Opened
	}

	if r.verdict.Tier.Severity() > c.open.verdict.Tier.Severity() {
		c.log.Debug("advisory preempted",
			"from_tier", c.open.verdict.Tier, "to_tier", r.verdict.Tier, "trigger", r.trigger)
		c.open = nil
		c.cfg.Shell.OnAdvisoryClose()
		c.present(r)
		return Preempted
	}

	if r.trigger != c.open.trigger {
		c.queued = &r
		return Queued
	}

	c.log.Debug("advisory dropped", "trigger", r.trigger, "tier", r.verdict.Tier)
	return Dropped
}

func (c *Controller) present(r request) {
	c.open = &r
	c.transition(model.PhasePresenting)
	c.cfg.Shell.OnAdvisoryOpen(r.payload(), r.actions())
}

func (c *Controller) promoteQueued() {
	if c.queued == nil {
		return
	}
	r := *c.queued
	c.queued = nil
	c.present(r)
}

func (c *Controller) recheck() (model.Verdict, bool) {
	if c.cfg.Recheck == nil {
		return model.Verdict{}, false
	}
	return c.cfg.Recheck()
}

func (c *Controller) cancelReveal() {
	if c.reveal != nil {
		c.reveal.Cancel()
		c.reveal = nil
	}
}

func (c *Controller) transition(to model.Phase) {
	if c.phase == to {
		return
	}
	c.log.Debug("advisory transition", "from", c.phase, "to", to)
	c.phase = to
}

func offers(specs []ActionSpec, a Action) bool {
	for _, s := range specs {
		if s.ID == a {
			return true
		}
	}
	return false
}

type nopShell struct{}

func (nopShell) OnIndicatorUpdate(model.Tier, string, string) {}
func (nopShell) OnAdvisoryOpen(Payload, []ActionSpec)         {}
func (nopShell) OnAdvisoryClose()                             {}
func (nopShell) OnAssistantMessage(model.RichText)            {}

type nopNavigator struct{}

func (nopNavigator) NavigateBack()     {}
func (nopNavigator) NavigateTo(string) {}
