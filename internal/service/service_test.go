package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/safeharbor/internal/classify"
	"github.com/ppiankov/safeharbor/internal/model"
)

func newTestService() *Service {
	return New(classify.NewDefault(), nil)
}

func TestClassify(t *testing.T) {
	s := newTestService()

	v, err := s.Classify("https://www.medicare.gov/plans")
	if err != nil {
		t.Fatal(err)
	}
	if v.Domain != "medicare.gov" || v.Tier != "safe" || v.Label != "Safe" || v.IconKey != "icon-shield" {
		t.Errorf("unexpected verdict %+v", v)
	}
	if v.ListHash == "" {
		t.Error("expected list hash")
	}

	if _, err := s.Classify("  "); !errors.Is(err, ErrEmptyURL) {
		t.Errorf("expected ErrEmptyURL, got %v", err)
	}
}

func TestAsk(t *testing.T) {
	s := newTestService()

	a, err := s.Ask("is this a scam", "https://free-prize-scam.net")
	if err != nil {
		t.Fatal(err)
	}
	if a.Intent != "scam" || a.Tier != "unsafe" || !strings.Contains(a.Text, "free-prize-scam.net") {
		t.Errorf("unexpected answer %+v", a)
	}

	a, _ = s.Ask("hello", "")
	if a.Tier != "pending" || a.Intent != "fallback" {
		t.Errorf("expected pending fallback without URL, got %+v", a)
	}

	if _, err := s.Ask("", "https://amazon.com"); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestCheckField(t *testing.T) {
	s := newTestService()
	pw := model.FieldDescriptor{Type: "password"}

	fc, _ := s.CheckField("https://unknown-site.example", pw)
	if !fc.Sensitive || !fc.Advise || fc.Kind != "password" {
		t.Errorf("expected advice on caution page, got %+v", fc)
	}
	if fc.Title != "Before you type that in" || len(fc.Actions) != 2 {
		t.Errorf("unexpected advisory preview %+v", fc)
	}

	fc, _ = s.CheckField("https://amazon.com", pw)
	if !fc.Sensitive || fc.Advise {
		t.Errorf("expected no advice on trusted page, got %+v", fc)
	}

	fc, _ = s.CheckField("https://unknown-site.example", model.FieldDescriptor{Name: "q"})
	if fc.Sensitive || fc.Advise {
		t.Errorf("expected ordinary field to pass, got %+v", fc)
	}

	if _, err := s.CheckField("", pw); !errors.Is(err, ErrEmptyURL) {
		t.Errorf("expected ErrEmptyURL, got %v", err)
	}
}

func TestSuggest(t *testing.T) {
	s := newTestService()
	got := s.Suggest("amaz")
	if len(got) != 2 || got[1].URL != "https://www.amazon.com" {
		t.Errorf("expected search entry then amazon, got %+v", got)
	}
}
