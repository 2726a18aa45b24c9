package model

import "testing"

func TestSeverityOrdering(t *testing.T) {
	if TierUnsafe.Severity() <= TierCaution.Severity() {
		t.Error("expected unsafe to outrank caution")
	}
	if TierCaution.Severity() <= TierPending.Severity() {
		t.Error("expected caution to outrank pending")
	}
	if TierSafe.Severity() != TierPending.Severity() {
		t.Error("expected safe and pending to share a rank")
	}
}

func TestIndicatorPresentation(t *testing.T) {
	tests := []struct {
		tier  Tier
		label string
		icon  string
	}{
		{TierSafe, "Safe", "icon-shield"},
		{TierCaution, "Caution", "icon-warning"},
		{TierUnsafe, "Unsafe", "icon-alert"},
		{TierPending, "Checking...", "icon-search"},
	}

	for _, tt := range tests {
		if got := tt.tier.Label(); got != tt.label {
			t.Errorf("%s: label = %q, want %q", tt.tier, got, tt.label)
		}
		if got := tt.tier.IconKey(); got != tt.icon {
			t.Errorf("%s: icon = %q, want %q", tt.tier, got, tt.icon)
		}
	}
}

func TestParseTierUnknownIsPending(t *testing.T) {
	if ParseTier("bogus") != TierPending {
		t.Error("expected unknown tier string to parse as pending")
	}
	if ParseTier("unsafe") != TierUnsafe {
		t.Error("expected unsafe to round-trip")
	}
}

func TestRecommendedFor(t *testing.T) {
	if RecommendedFor(TierUnsafe) != DiscourageStrongly {
		t.Error("expected unsafe to discourage strongly")
	}
	for _, tier := range []Tier{TierSafe, TierCaution, TierPending} {
		if RecommendedFor(tier) != ContinueAllowed {
			t.Errorf("expected %s to allow continuing", tier)
		}
	}
}
