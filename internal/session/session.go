// Package session wires the classifier, navigation tracker, sentinel,
// advisory controller and responder into one event-driven browsing
// session. Every inbound call runs as a single step under the session
// lock; shell callbacks are delivered after the step commits.
package session

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/safeharbor/internal/advisory"
	"github.com/ppiankov/safeharbor/internal/alert"
	"github.com/ppiankov/safeharbor/internal/audit"
	"github.com/ppiankov/safeharbor/internal/classify"
	"github.com/ppiankov/safeharbor/internal/config"
	"github.com/ppiankov/safeharbor/internal/logging"
	"github.com/ppiankov/safeharbor/internal/metrics"
	"github.com/ppiankov/safeharbor/internal/model"
	"github.com/ppiankov/safeharbor/internal/navigation"
	"github.com/ppiankov/safeharbor/internal/respond"
	"github.com/ppiankov/safeharbor/internal/schedule"
	"github.com/ppiankov/safeharbor/internal/sentinel"
)

// Classifier classifies URLs and identifies the lists it used.
type Classifier interface {
	Classify(rawURL string) model.Verdict
	ListHash() string
}

// Config wires a Session. Only Shell and Navigator are normally set by
// the embedding shell; everything else has a working default.
type Config struct {
	ID          string
	Shell       advisory.Shell
	Navigator   advisory.Navigator
	Classifier  Classifier
	Responder   *respond.Generator
	Scheduler   schedule.Scheduler
	Timing      config.Timing
	SafeHomeURL string
	Audit       *audit.Log
	// Alerts notifies a caregiver about risky moments. Nil disables.
	Alerts      *alert.Dispatcher
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	Now         func() time.Time
}

// Session is one user's browsing session.
type Session struct {
	id      string
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
	sched   schedule.Scheduler
	respond *respond.Generator
	metrics *metrics.Metrics

	mu       sync.Mutex
	out      *advisory.Outbox
	shell    *observer
	tracker  *navigation.Tracker
	sentinel *sentinel.Sentinel
	ctrl     *advisory.Controller
	turns    []model.ConversationTurn
	pageGen  uint64
	page     schedule.Group
	closed   bool
}

// New creates a Session. No shell callbacks are made until the first
// inbound event.
func New(cfg Config) *Session {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.Classifier == nil {
		cfg.Classifier = classify.NewDefault()
	}
	if cfg.Responder == nil {
		cfg.Responder = respond.New()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = schedule.Timer{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &Session{
		id:       cfg.ID,
		cfg:      cfg,
		logger:   cfg.Logger.With("session", cfg.ID),
		now:      cfg.Now,
		sched:    cfg.Scheduler,
		respond:  cfg.Responder,
		metrics:  cfg.Metrics,
		out:      advisory.NewOutbox(cfg.Shell, cfg.Navigator),
		tracker:  navigation.NewTracker(cfg.Classifier, navigation.WithClock(cfg.Now)),
		sentinel: sentinel.New(),
	}
	s.shell = &observer{s: s, next: s.out}
	s.ctrl = advisory.New(advisory.Config{
		Shell:       s.shell,
		Navigator:   s.shell,
		Scheduler:   cfg.Scheduler,
		RevealDelay: cfg.Timing.RevealDelay,
		SafeHomeURL: cfg.SafeHomeURL,
		Recheck:     s.recheck,
		Serialize:   s.step,
		Logger:      s.logger,
	})
	return s
}

// ID returns the session identifier used in audit entries.
func (s *Session) ID() string {
	return s.id
}

// step runs fn under the session lock, then delivers the shell calls it
// produced. Calls after Close are ignored.
func (s *Session) step(fn func()) {
	s.mu.Lock()
	if !s.closed {
		fn()
	}
	s.mu.Unlock()
	s.out.Flush()
}

// ReportNavigation handles the shell reporting that the embedded content
// now shows rawURL. Reporting the current URL again is a no-op.
func (s *Session) ReportNavigation(rawURL string) {
	if strings.TrimSpace(rawURL) == "" {
		return
	}
	s.step(func() {
		rec, changed := s.tracker.Report(rawURL)
		if !changed {
			s.logger.Debug("duplicate navigation ignored", "url", rawURL)
			return
		}

		s.pageGen++
		s.page.CancelAll()

		v := rec.Verdict
		s.logger.Info("navigation", "domain", rec.Domain, "tier", v.Tier)
		s.metrics.Classified(string(v.Tier))
		s.record(audit.AuditEntry{
			Event:  audit.EventNavigation,
			Domain: rec.Domain,
			Tier:   string(v.Tier),
			Detail: v.Rationale,
		})

		if v.Tier == model.TierUnsafe {
			s.alert(alert.KindUnsafeVisit, v, "")
		}

		s.sentinel.Reset(rec.Domain, v.Tier != model.TierSafe)
		s.ctrl.Navigate(rec)

		gen := s.pageGen
		s.later(&s.page, s.cfg.Timing.AnnounceDelay, func() {
			if gen != s.pageGen {
				return
			}
			s.say(s.respond.Announce(v))
		})
	})
}

// ReportFieldFocus handles the user focusing an input field on the
// current page.
func (s *Session) ReportFieldFocus(fd model.FieldDescriptor) {
	s.step(func() {
		ev := s.sentinel.OnFieldFocus(fd)
		if ev == nil {
			return
		}
		s.logger.Info("sensitive field", "domain", ev.Domain, "kind", ev.Kind, "pattern", ev.Pattern)
		s.metrics.FieldEvent(string(ev.Kind))
		s.record(audit.AuditEntry{
			Event:  audit.EventFieldFocus,
			Domain: ev.Domain,
			Detail: string(ev.Kind),
		})

		out := s.ctrl.FieldEvent(*ev)
		s.logger.Debug("field advisory requested", "outcome", out)
	})
}

// SubmitUserMessage appends the user's chat message and schedules the
// assistant's reply. Blank messages are ignored.
func (s *Session) SubmitUserMessage(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.step(func() {
		s.turns = append(s.turns, model.ConversationTurn{
			Speaker: model.SpeakerUser,
			Text:    model.RichText(text),
			At:      s.now().UTC(),
		})

		intent := respond.Classify(text)
		s.metrics.MessageAnswered(intent)
		s.record(audit.AuditEntry{Event: audit.EventMessage, Domain: s.context().Domain, Detail: intent})

		// A pending reply belongs to the page it was asked on; navigating
		// away drops it.
		reply := s.respond.Respond(text, s.context())
		gen := s.pageGen
		s.later(&s.page, s.cfg.Timing.ReplyDelay, func() {
			if gen != s.pageGen {
				return
			}
			s.say(reply)
		})
	})
}

// Act applies an advisory button press. Returns false if no advisory is
// open or it does not offer the action.
func (s *Session) Act(a advisory.Action) bool {
	var ok bool
	s.step(func() {
		open, _, _ := s.ctrl.Open()
		ok = s.ctrl.Act(a)
		if !ok {
			s.logger.Debug("action rejected", "action", a)
			return
		}
		s.metrics.ActionTaken(string(a))
		cur, _ := s.tracker.Current()
		s.record(audit.AuditEntry{Event: audit.EventAction, Domain: cur.Domain, Detail: string(a)})
		s.alertAction(a, open)
	})
	return ok
}

// DismissAdvisory is the outside-dismiss of the open advisory.
func (s *Session) DismissAdvisory() bool {
	return s.Act(advisory.ActionDismiss)
}

// ShowHelp posts the help card to the conversation.
func (s *Session) ShowHelp() {
	s.step(func() {
		s.say(s.respond.Help())
	})
}

// RequestSiteReport presents the navigation advisory for the current page,
// including the report for safe pages.
func (s *Session) RequestSiteReport() advisory.Outcome {
	out := advisory.Dropped
	s.step(func() {
		out = s.ctrl.RequestReport()
	})
	return out
}

// Conversation returns a copy of the conversation log.
func (s *Session) Conversation() []model.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]model.ConversationTurn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

// State returns the advisory controller snapshot.
func (s *Session) State() model.AdvisoryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.State()
}

// Advisory returns the open advisory, if any.
func (s *Session) Advisory() (advisory.Payload, []advisory.ActionSpec, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Open()
}

// Current returns the current navigation record.
func (s *Session) Current() (model.NavigationRecord, bool) {
	return s.tracker.Current()
}

// Close cancels pending continuations. Later calls are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.page.CancelAll()
	s.mu.Unlock()
}

func (s *Session) context() respond.Context {
	cur, ok := s.tracker.Current()
	if !ok {
		return respond.Context{Tier: model.TierPending}
	}
	return respond.Context{Domain: cur.Domain, Tier: cur.Verdict.Tier}
}

func (s *Session) recheck() (model.Verdict, bool) {
	before, _ := s.tracker.Current()
	rec, ok := s.tracker.Reclassify()
	if !ok {
		return model.Verdict{}, false
	}
	s.metrics.Classified(string(rec.Verdict.Tier))
	if rec.Verdict.Tier != before.Verdict.Tier {
		s.logger.Info("verdict changed on recheck", "domain", rec.Domain, "from", before.Verdict.Tier, "to", rec.Verdict.Tier)
		s.sentinel.Reset(rec.Domain, rec.Verdict.Tier != model.TierSafe)
	}
	return rec.Verdict, true
}

// later runs fn as its own step after d, or inline when d is zero.
// Must be called inside a step.
func (s *Session) later(g *schedule.Group, d time.Duration, fn func()) {
	if d <= 0 {
		fn()
		return
	}
	g.After(s.sched, d, func() { s.step(fn) })
}

// say appends an assistant turn and posts it to the shell.
func (s *Session) say(text model.RichText) {
	s.turns = append(s.turns, model.ConversationTurn{
		Speaker: model.SpeakerAssistant,
		Text:    text,
		At:      s.now().UTC(),
	})
	s.shell.OnAssistantMessage(text)
}

// alertAction reports button presses a caregiver would want to know about.
func (s *Session) alertAction(a advisory.Action, open advisory.Payload) {
	v := model.Verdict{Domain: open.Domain, Tier: open.Tier}
	switch {
	case a == advisory.ActionAcknowledgeRisk && v.Tier == model.TierUnsafe:
		s.alert(alert.KindStayedOnUnsafe, v, "")
	case a == advisory.ActionTrustAndContinue:
		s.alert(alert.KindTrustedAnyway, v, string(open.FieldKind))
	case a == advisory.ActionReturnToSafety && v.Tier == model.TierUnsafe:
		s.alert(alert.KindReturnedToSafety, v, "")
	}
}

func (s *Session) alert(kind alert.Kind, v model.Verdict, detail string) {
	if s.cfg.Alerts == nil {
		return
	}
	s.cfg.Alerts.Dispatch(alert.Event{
		Timestamp: s.now().UTC().Format(time.RFC3339),
		SessionID: s.id,
		Kind:      kind,
		Domain:    v.Domain,
		Tier:      string(v.Tier),
		Detail:    detail,
		ListHash:  s.cfg.Classifier.ListHash(),
	})
}

func (s *Session) record(e audit.AuditEntry) {
	if s.cfg.Audit == nil {
		return
	}
	e.SessionID = s.id
	e.ListHash = s.cfg.Classifier.ListHash()
	if err := s.cfg.Audit.Record(e); err != nil {
		s.logger.Warn("audit record failed", "event", e.Event, "error", err)
	}
}
