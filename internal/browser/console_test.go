package browser

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ppiankov/safeharbor/internal/advisory"
	"github.com/ppiankov/safeharbor/internal/model"
)

type fakeControls struct {
	fields   []model.FieldDescriptor
	messages []string
	acts     []advisory.Action
	dismiss  int
	help     int
	reports  int
}

func (f *fakeControls) ReportFieldFocus(fd model.FieldDescriptor) { f.fields = append(f.fields, fd) }
func (f *fakeControls) SubmitUserMessage(text string)             { f.messages = append(f.messages, text) }
func (f *fakeControls) Act(a advisory.Action) bool {
	f.acts = append(f.acts, a)
	return true
}
func (f *fakeControls) DismissAdvisory() bool {
	f.dismiss++
	return true
}
func (f *fakeControls) ShowHelp() { f.help++ }
func (f *fakeControls) RequestSiteReport() advisory.Outcome {
	f.reports++
	return advisory.Opened
}

func newTestConsole() (*Console, *fakeControls, *reports, *bytes.Buffer) {
	ctl := &fakeControls{}
	r := &reports{}
	var buf bytes.Buffer
	term := NewTerminal(&buf, nil)
	return NewConsole(ctl, NewHistory(r, nil), term, "https://www.google.com"), ctl, r, &buf
}

func TestConsoleNavigation(t *testing.T) {
	c, _, r, _ := newTestConsole()

	c.Exec("go https://amazon.com")
	c.Exec("scam.example")
	c.Exec("back")
	c.Exec("home")

	want := []string{"https://amazon.com", "scam.example", "https://amazon.com", "https://www.google.com"}
	if strings.Join(r.urls, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", r.urls, want)
	}
}

func TestConsoleChatAndHelp(t *testing.T) {
	c, ctl, _, _ := newTestConsole()

	c.Exec("ask is this safe?")
	c.Exec("?how do I shop")
	c.Exec("help")
	c.Exec("report")
	c.Exec("close")

	if len(ctl.messages) != 2 || ctl.messages[0] != "is this safe?" || ctl.messages[1] != "how do I shop" {
		t.Errorf("unexpected messages %q", ctl.messages)
	}
	if ctl.help != 1 || ctl.reports != 1 || ctl.dismiss != 1 {
		t.Errorf("expected help, report and dismiss once each, got %+v", ctl)
	}
}

func TestConsoleButtons(t *testing.T) {
	c, ctl, _, buf := newTestConsole()

	c.Exec("1")
	if !strings.Contains(buf.String(), "no such button") {
		t.Error("expected complaint with no advisory open")
	}

	p, actions := advisory.NavigationAdvisory(model.Verdict{Domain: "scam.example", Tier: model.TierUnsafe})
	c.term.OnAdvisoryOpen(p, actions)
	c.Exec("2")

	if len(ctl.acts) != 1 || ctl.acts[0] != advisory.ActionReturnToSafety {
		t.Errorf("expected return_to_safety, got %v", ctl.acts)
	}
}

func TestConsoleField(t *testing.T) {
	c, ctl, _, buf := newTestConsole()

	c.Exec("field password")
	c.Exec(`field name=ssn label="Social Security Number"`)
	c.Exec("field")

	if len(ctl.fields) != 2 {
		t.Fatalf("expected 2 field events, got %d", len(ctl.fields))
	}
	if ctl.fields[0].Type != "password" {
		t.Errorf("expected type password, got %+v", ctl.fields[0])
	}
	if ctl.fields[1].Label != "Social Security Number" || ctl.fields[1].Name != "ssn" {
		t.Errorf("unexpected descriptor %+v", ctl.fields[1])
	}
	if !strings.Contains(buf.String(), "usage: field") {
		t.Error("expected usage for bare field command")
	}
}

func TestConsoleRunStopsOnQuit(t *testing.T) {
	c, ctl, r, _ := newTestConsole()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := strings.NewReader("go amazon.com\nask hi\nquit\nask never\n")
	if err := c.Run(ctx, in); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(r.urls) != 1 || len(ctl.messages) != 1 {
		t.Errorf("expected processing to stop at quit, got urls=%v messages=%v", r.urls, ctl.messages)
	}
}

func TestConsoleRunEOF(t *testing.T) {
	c, ctl, _, _ := newTestConsole()

	if err := c.Run(context.Background(), strings.NewReader("ask one\nask two")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ctl.messages) != 2 {
		t.Errorf("expected 2 messages, got %v", ctl.messages)
	}
}
