package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/safeharbor/internal/advisory"
	"github.com/ppiankov/safeharbor/internal/browser"
	"github.com/ppiankov/safeharbor/internal/classify"
	"github.com/ppiankov/safeharbor/internal/config"
	"github.com/ppiankov/safeharbor/internal/schedule"
	"github.com/ppiankov/safeharbor/internal/session"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

// harness is one scenario's session with a recording shell, a browser
// history that loops navigations back in, and a virtual clock.
type harness struct {
	rec   *advisory.Recorder
	hist  *browser.History
	clock *schedule.Manual
	sess  *session.Session
}

func newHarness(s *Scenario, lists sitelist.Lists, listHash string) *harness {
	if s.Sites != nil {
		lists = *s.Sites
		listHash = "inline"
	}
	timing := config.DefaultConfig().Timing
	if s.Timing != nil {
		timing = *s.Timing
	}

	c := classify.New(lists)
	c.SetLists(lists, listHash)

	h := &harness{rec: &advisory.Recorder{}, clock: schedule.NewManual()}
	h.hist = browser.NewHistory(nil, h.rec)
	h.sess = session.New(session.Config{
		ID:          "scenario",
		Shell:       h.rec,
		Navigator:   h.hist,
		Classifier:  c,
		Scheduler:   h.clock,
		Timing:      timing,
		SafeHomeURL: s.SafeHomeURL,
	})
	h.hist.SetReporter(h.sess)
	return h
}

// Run drives a fresh session through the scenario's steps. Each scenario
// is independent; virtual time only moves on wait steps.
func Run(s *Scenario, lists sitelist.Lists, listHash string) *RunResult {
	h := newHarness(s, lists, listHash)
	defer h.sess.Close()

	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Steps),
	}

	for i, st := range s.Steps {
		sr := StepResult{Index: i + 1}
		event, accepted, err := h.apply(st)
		sr.Event = event
		if st.Wait > 0 {
			h.clock.Advance(st.Wait)
			sr.Event = strings.TrimSpace(sr.Event + " wait " + st.Wait.String())
		}

		if err != nil {
			sr.Failures = append(sr.Failures, err.Error())
		}
		if st.Expect != nil {
			sr.Failures = append(sr.Failures, h.check(st.Expect, accepted)...)
		}

		if len(sr.Failures) == 0 {
			sr.Passed = true
			result.Passed++
		} else {
			result.Failed++
		}
		result.Steps = append(result.Steps, sr)
	}

	return result
}

func (h *harness) apply(st Step) (string, *bool, error) {
	switch {
	case st.Navigate != "":
		h.hist.Visit(st.Navigate)
		return "navigate " + st.Navigate, nil, nil
	case st.Focus != nil:
		h.sess.ReportFieldFocus(*st.Focus)
		return "focus " + describeField(st), nil, nil
	case st.Message != "":
		h.sess.SubmitUserMessage(st.Message)
		return fmt.Sprintf("message %q", st.Message), nil, nil
	case st.Act != "":
		a, ok := advisory.ParseAction(st.Act)
		if !ok {
			return "act " + st.Act, nil, fmt.Errorf("unknown action %q", st.Act)
		}
		accepted := h.sess.Act(a)
		return "act " + st.Act, &accepted, nil
	case st.Report:
		h.sess.RequestSiteReport()
		return "report", nil, nil
	case st.Help:
		h.sess.ShowHelp()
		return "help", nil, nil
	}
	return "", nil, nil
}

func describeField(st Step) string {
	fd := st.Focus
	for _, s := range []string{fd.Type, fd.Name, fd.ID, fd.Autocomplete, fd.Label, fd.Placeholder} {
		if s != "" {
			return s
		}
	}
	return "field"
}

func (h *harness) check(e *Expect, accepted *bool) []string {
	var fails []string
	mismatch := func(what, want, got string) {
		if want != got {
			fails = append(fails, fmt.Sprintf("expected %s %s, got %s", what, want, got))
		}
	}

	if e.Indicator != "" {
		got := "none"
		if ind, ok := h.rec.Last(advisory.EventIndicator); ok {
			got = string(ind.Tier)
		}
		mismatch("indicator", e.Indicator, got)
	}
	if e.Phase != "" {
		mismatch("phase", e.Phase, string(h.sess.State().Phase))
	}

	p, actions, open := h.sess.Advisory()
	if e.Advisory != "" {
		got := "none"
		if open {
			got = string(p.Trigger)
		}
		mismatch("advisory", e.Advisory, got)
	}
	if e.Tier != "" {
		mismatch("advisory tier", e.Tier, string(p.Tier))
	}
	if e.Title != "" {
		mismatch("title", e.Title, p.Title)
	}
	if len(e.Actions) > 0 {
		ids := make([]string, 0, len(actions))
		for _, a := range advisory.ActionIDs(actions) {
			ids = append(ids, string(a))
		}
		mismatch("actions", strings.Join(e.Actions, ","), strings.Join(ids, ","))
	}

	if e.Accepted != nil {
		got := "n/a"
		if accepted != nil {
			got = fmt.Sprint(*accepted)
		}
		mismatch("accepted", fmt.Sprint(*e.Accepted), got)
	}
	if e.Left != "" {
		mismatch("left", e.Left, h.lastLeft())
	}
	if e.Domain != "" {
		cur, _ := h.sess.Current()
		mismatch("domain", e.Domain, cur.Domain)
	}
	if e.Says != "" {
		msg, _ := h.rec.Last(advisory.EventMessage)
		if !strings.Contains(msg.Text, e.Says) {
			fails = append(fails, fmt.Sprintf("expected assistant to say %q, last message %q", e.Says, firstLine(msg.Text)))
		}
	}
	if e.Opens != nil {
		mismatch("advisories opened", fmt.Sprint(*e.Opens), fmt.Sprint(h.rec.Count(advisory.EventOpen)))
	}

	return fails
}

func (h *harness) lastLeft() string {
	events := h.rec.Events()
	for i := len(events) - 1; i >= 0; i-- {
		switch events[i].Kind {
		case advisory.EventBack:
			return "back"
		case advisory.EventNavigate:
			return events[i].URL
		}
	}
	return "none"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Load parses a scenario YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return &s, nil
}

// LoadAndRun loads a scenario file and the site lists, then runs it.
func LoadAndRun(path, sitesPath string) (*RunResult, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}

	lists, hash, err := sitelist.LoadWithHash(sitesPath)
	if err != nil {
		return nil, fmt.Errorf("load site lists: %w", err)
	}

	result := Run(s, lists, hash)
	result.File = path

	return result, nil
}
