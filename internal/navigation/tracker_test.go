package navigation

import (
	"testing"
	"time"

	"github.com/ppiankov/safeharbor/internal/classify"
	"github.com/ppiankov/safeharbor/internal/model"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

type countingClassifier struct {
	inner *classify.Classifier
	calls int
}

func (c *countingClassifier) Classify(url string) model.Verdict {
	c.calls++
	return c.inner.Classify(url)
}

func fixedClock() func() time.Time {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestReportClassifiesNewURL(t *testing.T) {
	tr := NewTracker(classify.NewDefault(), WithClock(fixedClock()))

	rec, changed := tr.Report("https://www.amazon.com")
	if !changed {
		t.Fatal("expected first report to be a change")
	}
	if rec.Domain != "amazon.com" {
		t.Errorf("expected domain amazon.com, got %s", rec.Domain)
	}
	if rec.Verdict.Tier != model.TierSafe {
		t.Errorf("expected safe, got %s", rec.Verdict.Tier)
	}
	if !rec.ObservedAt.Equal(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected timestamp %v", rec.ObservedAt)
	}
}

func TestReportSameURLIsNoOp(t *testing.T) {
	cc := &countingClassifier{inner: classify.NewDefault()}
	tr := NewTracker(cc)

	tr.Report("https://example.org")
	_, changed := tr.Report("https://example.org")
	if changed {
		t.Error("expected repeated URL to be deduplicated")
	}
	if cc.calls != 1 {
		t.Errorf("expected classifier called once, got %d", cc.calls)
	}
}

func TestReportReturnToPreviousURLIsNew(t *testing.T) {
	tr := NewTracker(classify.NewDefault())

	tr.Report("https://a.example")
	tr.Report("https://b.example")
	if _, changed := tr.Report("https://a.example"); !changed {
		t.Error("expected A -> B -> A to classify A again")
	}
}

func TestCurrentBeforeNavigation(t *testing.T) {
	tr := NewTracker(classify.NewDefault())
	if _, ok := tr.Current(); ok {
		t.Error("expected no current record before any navigation")
	}
	if _, ok := tr.Reclassify(); ok {
		t.Error("expected reclassify to report nothing before navigation")
	}
}

func TestReclassifySeesUpdatedLists(t *testing.T) {
	c := classify.NewDefault()
	tr := NewTracker(c)

	tr.Report("https://library.example")
	c.SetLists(sitelist.Lists{Allow: []string{"library.example"}}, "")

	rec, ok := tr.Reclassify()
	if !ok {
		t.Fatal("expected reclassify to succeed")
	}
	if rec.Verdict.Tier != model.TierSafe {
		t.Errorf("expected safe after list update, got %s", rec.Verdict.Tier)
	}
	cur, _ := tr.Current()
	if cur.Verdict.Tier != model.TierSafe {
		t.Error("expected current record to hold the fresh verdict")
	}
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"amazon.com", "https://amazon.com"},
		{"  http://example.org ", "http://example.org"},
		{"HTTPS://Example.org", "HTTPS://Example.org"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeInput(tt.in); got != tt.want {
			t.Errorf("NormalizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
