package scenario

import (
	"time"

	"github.com/ppiankov/safeharbor/internal/config"
	"github.com/ppiankov/safeharbor/internal/model"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

// Step is one inbound event (at most one of Navigate, Focus, Message, Act,
// Report, Help), an optional virtual-time Wait, then optional expectations
// checked after both.
type Step struct {
	Navigate string                 `yaml:"navigate,omitempty"`
	Focus    *model.FieldDescriptor `yaml:"focus,omitempty"`
	Message  string                 `yaml:"message,omitempty"`
	Act      string                 `yaml:"act,omitempty"`
	Report   bool                   `yaml:"report,omitempty"`
	Help     bool                   `yaml:"help,omitempty"`
	Wait     time.Duration          `yaml:"wait,omitempty"`
	Expect   *Expect                `yaml:"expect,omitempty"`
}

// Expect lists assertions on the session after a step. Empty fields are
// not checked.
type Expect struct {
	// Indicator is the tier of the latest indicator update.
	Indicator string `yaml:"indicator,omitempty"`
	Phase     string `yaml:"phase,omitempty"`
	// Advisory is the trigger of the open advisory, or "none".
	Advisory string   `yaml:"advisory,omitempty"`
	Tier     string   `yaml:"tier,omitempty"`
	Title    string   `yaml:"title,omitempty"`
	Actions  []string `yaml:"actions,omitempty"`
	// Accepted checks the result of an act step.
	Accepted *bool `yaml:"accepted,omitempty"`
	// Left is "back", a URL, or "none" for the latest navigate-away.
	Left string `yaml:"left,omitempty"`
	// Domain is the current page's domain.
	Domain string `yaml:"domain,omitempty"`
	// Says is a substring of the latest assistant message.
	Says string `yaml:"says,omitempty"`
	// Opens counts advisories opened since the scenario began.
	Opens *int `yaml:"opens,omitempty"`
}

// Scenario is a named browsing session with expectations.
type Scenario struct {
	Name        string          `yaml:"name"`
	SafeHomeURL string          `yaml:"safe_home_url,omitempty"`
	Timing      *config.Timing  `yaml:"timing,omitempty"`
	Sites       *sitelist.Lists `yaml:"sites,omitempty"`
	Steps       []Step          `yaml:"steps"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index    int      `json:"index"`
	Event    string   `json:"event"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

// RunResult is the outcome of running one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Steps  []StepResult `json:"steps"`
}
