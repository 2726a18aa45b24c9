package respond

import (
	"strings"
	"testing"

	"github.com/ppiankov/safeharbor/internal/model"
)

func TestSafetyQuestionOnSafeSite(t *testing.T) {
	g := New()
	out := string(g.Respond("is this site safe?", Context{Domain: "aarp.org", Tier: model.TierSafe}))

	if !strings.Contains(out, "aarp.org") {
		t.Errorf("expected domain in answer, got %q", out)
	}
	if !strings.Contains(out, "Great news! This website is safe to use") {
		t.Errorf("expected safe-tier template, got %q", out)
	}
	if strings.Contains(out, "How to Spot Online Scams") {
		t.Error("expected safety answer, not scam guide")
	}
}

func TestSafetyAnswerDependsOnTier(t *testing.T) {
	g := New()
	tiers := map[model.Tier]string{
		model.TierSafe:    "Great news",
		model.TierCaution: "extra careful",
		model.TierUnsafe:  "may not be safe",
		model.TierPending: "still checking",
	}
	for tier, want := range tiers {
		out := string(g.Respond("Is it SECURE here", Context{Domain: "x.example", Tier: tier}))
		if !strings.Contains(out, want) {
			t.Errorf("%s: expected %q in %q", tier, want, out)
		}
		if tier != model.TierSafe && strings.Contains(out, "Great news") {
			t.Errorf("%s: must not claim the site is safe", tier)
		}
	}
}

func TestIntentOrderIsTieBreak(t *testing.T) {
	tests := []struct {
		text, want string
	}{
		{"is this a scam?", "scam"},
		{"is this phishing or safe", "safety"},
		{"how do I login without getting scammed", "scam"},
		{"I want to buy a new password manager", "password"},
		{"Where should I go shopping", "shopping"},
		{"what's the weather", "fallback"},
		{"", "fallback"},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestEveryTemplateInterpolatesDomain(t *testing.T) {
	g := New()
	msgs := []string{"safe?", "scam?", "password?", "buy?", "hello"}
	tiers := []model.Tier{model.TierSafe, model.TierCaution, model.TierUnsafe, model.TierPending}

	for _, m := range msgs {
		for _, tier := range tiers {
			out := string(g.Respond(m, Context{Domain: "medicare.gov", Tier: tier}))
			if !strings.Contains(out, "medicare.gov") {
				t.Errorf("%q/%s: expected domain in %q", m, tier, out)
			}
		}
	}
}

func TestFallbackNamesTier(t *testing.T) {
	g := New()
	out := string(g.Respond("hello there", Context{Domain: "example.org", Tier: model.TierPending}))
	if !strings.Contains(out, "I'm here to keep you safe online") {
		t.Errorf("expected fallback overview, got %q", out)
	}
	if !strings.Contains(out, "Checking...") {
		t.Errorf("expected tier label in fallback, got %q", out)
	}
}

func TestRespondIsDeterministic(t *testing.T) {
	g := New()
	ctx := Context{Domain: "walmart.com", Tier: model.TierSafe}
	a := g.Respond("can I buy here", ctx)
	b := g.Respond("can I buy here", ctx)
	if a != b {
		t.Error("expected identical output for identical input")
	}
}

func TestEmptyDomain(t *testing.T) {
	g := New()
	out := string(g.Respond("safe?", Context{Tier: model.TierPending}))
	if !strings.Contains(out, "this page") {
		t.Errorf("expected placeholder domain, got %q", out)
	}
}

func TestAnnounce(t *testing.T) {
	g := New()
	tests := []struct {
		tier model.Tier
		want string
	}{
		{model.TierSafe, "You've navigated to amazon.com. This is a trusted website. Browse safely!"},
		{model.TierCaution, "You're on amazon.com. Please be cautious"},
		{model.TierUnsafe, "amazon.com may not be safe! Consider leaving this site."},
		{model.TierPending, "still checking"},
	}
	for _, tt := range tests {
		out := string(g.Announce(model.Verdict{Tier: tt.tier, Domain: "amazon.com"}))
		if !strings.Contains(out, tt.want) {
			t.Errorf("%s: expected %q in %q", tt.tier, tt.want, out)
		}
	}
}

func TestHelp(t *testing.T) {
	if !strings.Contains(string(New().Help()), "SafeHarbor Help") {
		t.Error("expected help title")
	}
}
