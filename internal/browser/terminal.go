package browser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/ppiankov/safeharbor/internal/advisory"
	"github.com/ppiankov/safeharbor/internal/model"
)

// RenderFunc turns markdown into terminal text.
type RenderFunc func(markdown string) string

// PlainRender prints markdown as-is.
func PlainRender(md string) string {
	return strings.TrimRight(md, "\n") + "\n"
}

// NewRender returns a glamour renderer when f is an interactive
// terminal and PlainRender otherwise.
func NewRender(f *os.File) RenderFunc {
	if !term.IsTerminal(int(f.Fd())) {
		return PlainRender
	}
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 20 {
		opts = append(opts, glamour.WithWordWrap(w-4))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return PlainRender
	}
	return func(md string) string {
		out, err := r.Render(md)
		if err != nil {
			return PlainRender(md)
		}
		return out
	}
}

// Terminal is an advisory.Shell that prints to a writer. Callbacks may
// arrive from timer goroutines, so writes are serialized.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	render  RenderFunc
	actions []advisory.ActionSpec
}

// NewTerminal creates a terminal shell. A nil render prints plain text.
func NewTerminal(w io.Writer, render RenderFunc) *Terminal {
	if render == nil {
		render = PlainRender
	}
	return &Terminal{w: w, render: render}
}

func (t *Terminal) OnIndicatorUpdate(tier model.Tier, label, iconKey string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "[%s %s]\n", badge(tier), label)
}

func (t *Terminal) OnAdvisoryOpen(p advisory.Payload, actions []advisory.ActionSpec) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions = actions

	var b strings.Builder
	fmt.Fprintf(&b, "## %s %s\n\n%s\n\n", badge(p.Tier), p.Title, p.Body)
	for i, a := range actions {
		label := a.Label
		if a.Friction == advisory.FrictionHigh {
			label = "**" + label + "**"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, label)
	}
	fmt.Fprint(t.w, t.render(b.String()))
}

func (t *Terminal) OnAdvisoryClose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions = nil
}

func (t *Terminal) OnAssistantMessage(text model.RichText) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprint(t.w, t.render("**SafeHarbor:** "+string(text)))
}

// Choice maps a 1-based button number to the open advisory's action.
func (t *Terminal) Choice(n int) (advisory.Action, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 1 || n > len(t.actions) {
		return "", false
	}
	return t.actions[n-1].ID, true
}

// Println writes a line outside any callback.
func (t *Terminal) Println(a ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, a...)
}

func badge(tier model.Tier) string {
	switch tier {
	case model.TierSafe:
		return "OK"
	case model.TierCaution:
		return "!"
	case model.TierUnsafe:
		return "!!"
	default:
		return "?"
	}
}
