package respond

import (
	"fmt"
	"strings"

	"github.com/ppiankov/safeharbor/internal/model"
)

// Context is what the generator knows about the current page.
type Context struct {
	Domain string
	Tier   model.Tier
}

func (c Context) domain() string {
	if c.Domain == "" {
		return "this page"
	}
	return c.Domain
}

// Generator answers chat questions from a fixed keyword table.
// It is stateless and deterministic.
type Generator struct{}

// New returns a Generator.
func New() *Generator {
	return &Generator{}
}

// Respond returns the answer for text. Unmatched text gets the general
// safety overview.
func (g *Generator) Respond(text string, ctx Context) model.RichText {
	name := Classify(text)
	for _, in := range intents {
		if in.Name == name {
			return model.RichText(in.render(ctx))
		}
	}
	return model.RichText(fallbackAnswer(ctx))
}

// Classify returns the name of the first intent matching text, or
// "fallback".
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, in := range intents {
		for _, kw := range in.Keywords {
			if strings.Contains(lower, kw) {
				return in.Name
			}
		}
	}
	return "fallback"
}

// Announce returns the chat line posted after a navigation settles.
func (g *Generator) Announce(v model.Verdict) model.RichText {
	d := v.Domain
	switch v.Tier {
	case model.TierSafe:
		return model.RichText(fmt.Sprintf("You've navigated to %s. This is a trusted website. Browse safely!", d))
	case model.TierCaution:
		return model.RichText(fmt.Sprintf("You're on %s. Please be cautious and avoid entering personal information.", d))
	case model.TierUnsafe:
		return model.RichText(fmt.Sprintf("**WARNING:** %s may not be safe! Consider leaving this site.", d))
	default:
		return model.RichText(fmt.Sprintf("You've navigated to %s. I'm still checking this site, so hold off on personal information for now.", d))
	}
}

// Help returns the help card.
func (g *Generator) Help() model.RichText {
	return `**SafeHarbor Help**

- Safety indicator: Safe, Caution, Unsafe, or Checking... while I look a site up
- Use Back, Forward and Home to move around
- Ask me about website safety anytime!
- I can help with passwords and security tips`
}
