package model

// Phase is the advisory controller's lifecycle position.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseIndicating Phase = "indicating"
	PhasePresenting Phase = "presenting"
	PhaseDismissed  Phase = "dismissed"
)

// Trigger is what caused an advisory to be presented.
type Trigger string

const (
	TriggerNavigation Trigger = "navigation"
	TriggerField      Trigger = "field"
)

// AdvisoryState is a snapshot of the controller.
// Verdict and Trigger are meaningful only while Presenting.
type AdvisoryState struct {
	Phase   Phase   `json:"phase"`
	Verdict Verdict `json:"verdict"`
	Trigger Trigger `json:"trigger,omitempty"`
}
