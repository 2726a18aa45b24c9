package advisory

import (
	"fmt"

	"github.com/ppiankov/safeharbor/internal/model"
)

// Action identifies a button on an advisory.
type Action string

const (
	ActionAcknowledgeRisk  Action = "acknowledge_risk"
	ActionReturnToSafety   Action = "return_to_safety"
	ActionCheckSiteNow     Action = "check_site_now"
	ActionTrustAndContinue Action = "trust_and_continue"
	// ActionDismiss is the outside-dismiss (click away, Escape). Always accepted.
	ActionDismiss Action = "dismiss"
)

// ParseAction maps a string to a known Action.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionAcknowledgeRisk, ActionReturnToSafety, ActionCheckSiteNow, ActionTrustAndContinue, ActionDismiss:
		return a, true
	}
	return "", false
}

// Friction hints how prominently the shell should render a button.
type Friction string

const (
	FrictionLow  Friction = "low"
	FrictionHigh Friction = "high"
)

// ActionSpec is one button offered by an open advisory.
type ActionSpec struct {
	ID       Action   `json:"id"`
	Label    string   `json:"label"`
	Friction Friction `json:"friction"`
}

// Payload is everything the shell needs to render an advisory.
type Payload struct {
	Trigger   model.Trigger   `json:"trigger"`
	Tier      model.Tier      `json:"tier"`
	Domain    string          `json:"domain"`
	IconKey   string          `json:"icon_key"`
	Title     string          `json:"title"`
	Body      model.RichText  `json:"body"`
	FieldKind model.FieldKind `json:"field_kind,omitempty"`
}

// request is a pending or open advisory.
type request struct {
	verdict model.Verdict
	trigger model.Trigger
	field   model.FieldKind
}

func (r request) payload() Payload {
	p := Payload{
		Trigger:   r.trigger,
		Tier:      r.verdict.Tier,
		Domain:    r.verdict.Domain,
		IconKey:   r.verdict.Tier.IconKey(),
		FieldKind: r.field,
	}
	if r.trigger == model.TriggerField {
		p.Title, p.Body = fieldCopy(r.verdict, r.field)
		return p
	}
	p.Title, p.Body = navigationCopy(r.verdict)
	return p
}

func (r request) actions() []ActionSpec {
	if r.trigger == model.TriggerField {
		return []ActionSpec{
			{ID: ActionCheckSiteNow, Label: "Check this site now", Friction: FrictionLow},
			{ID: ActionTrustAndContinue, Label: "I trust this site, continue", Friction: FrictionHigh},
		}
	}

	switch r.verdict.Tier {
	case model.TierSafe:
		return []ActionSpec{
			{ID: ActionAcknowledgeRisk, Label: "Continue browsing safely", Friction: FrictionLow},
		}
	case model.TierUnsafe:
		return []ActionSpec{
			{ID: ActionAcknowledgeRisk, Label: "I'll stay but be careful", Friction: FrictionLow},
			{ID: ActionReturnToSafety, Label: "Yes, take me to safety", Friction: FrictionHigh},
		}
	case model.TierCaution:
		return []ActionSpec{
			{ID: ActionAcknowledgeRisk, Label: "I understand, continue", Friction: FrictionLow},
			{ID: ActionReturnToSafety, Label: "Take me back to safety", Friction: FrictionHigh},
		}
	default:
		return []ActionSpec{
			{ID: ActionAcknowledgeRisk, Label: "Okay, I'll be careful", Friction: FrictionLow},
			{ID: ActionReturnToSafety, Label: "Take me back", Friction: FrictionHigh},
		}
	}
}

func navigationCopy(v model.Verdict) (string, model.RichText) {
	switch v.Tier {
	case model.TierSafe:
		return v.Domain + " is Safe", model.RichText(fmt.Sprintf(`Great news! %s has passed all my safety checks:

- It's on my list of trusted websites
- No known safety concerns
- Safe to enter personal information`, v.Domain))
	case model.TierCaution:
		return "Please be extra careful here", model.RichText(fmt.Sprintf(`I don't have complete safety information about %s. To protect yourself:

- Don't enter passwords or personal information
- Be cautious of any download requests
- Leave if anything seems suspicious`, v.Domain))
	case model.TierUnsafe:
		return "This website may not be safe", model.RichText(fmt.Sprintf(`For your protection, I strongly recommend leaving %s immediately. This website might try to:

- Steal your personal information
- Install harmful software
- Trick you into sharing passwords`, v.Domain))
	default:
		return "I'm still checking this site", model.RichText(fmt.Sprintf(`%s isn't on my list of known websites yet, so I can't vouch for it.

- Hold off on passwords and card numbers for now
- Leave if anything seems suspicious`, v.Domain))
	}
}

func fieldCopy(v model.Verdict, kind model.FieldKind) (string, model.RichText) {
	return "Before you type that in", model.RichText(fmt.Sprintf(
		`You're about to enter %s on %s, which I've rated **%s**.

Scam sites often ask for this kind of information. Would you like me to check this site first?`,
		describeField(kind), v.Domain, v.Tier.Label()))
}

func describeField(kind model.FieldKind) string {
	switch kind {
	case model.FieldPassword:
		return "a password"
	case model.FieldEmail:
		return "your email address"
	case model.FieldPhone:
		return "your phone number"
	case model.FieldFinancial:
		return "payment card details"
	default:
		return "personal information"
	}
}

// NavigationAdvisory returns what a navigation advisory for v shows.
func NavigationAdvisory(v model.Verdict) (Payload, []ActionSpec) {
	r := request{verdict: v, trigger: model.TriggerNavigation}
	return r.payload(), r.actions()
}

// FieldAdvisory returns what a disclosure-risk advisory for kind on v shows.
func FieldAdvisory(v model.Verdict, kind model.FieldKind) (Payload, []ActionSpec) {
	r := request{verdict: v, trigger: model.TriggerField, field: kind}
	return r.payload(), r.actions()
}
