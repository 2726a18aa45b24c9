package browser

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/ppiankov/safeharbor/internal/advisory"
	"github.com/ppiankov/safeharbor/internal/model"
)

// Controls is the part of a session the console drives.
type Controls interface {
	ReportFieldFocus(fd model.FieldDescriptor)
	SubmitUserMessage(text string)
	Act(a advisory.Action) bool
	DismissAdvisory() bool
	ShowHelp()
	RequestSiteReport() advisory.Outcome
}

// Console turns typed commands into session events.
type Console struct {
	sess Controls
	hist *History
	term *Terminal
	home string
}

// NewConsole creates a console. home is where "home" goes.
func NewConsole(sess Controls, hist *History, t *Terminal, home string) *Console {
	return &Console{sess: sess, hist: hist, term: t, home: home}
}

const usage = `commands:
  go <url>            open a page (a bare address works too)
  back | home         move around
  field <attrs...>    focus a form field: "password" or name=... type=... label=...
  ask <question>      chat with the assistant (or start a line with "?")
  1, 2                press a button on the open advisory
  close               dismiss the open advisory
  report              show the safety report for this page
  help                show the assistant's help card
  quit`

// Exec runs one command line. Returns false when the user quits.
func (c *Console) Exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if strings.HasPrefix(line, "?") {
		c.sess.SubmitUserMessage(strings.TrimPrefix(line, "?"))
		return true
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return false
	case "go", "open":
		if rest != "" {
			c.hist.Visit(rest)
		}
	case "back":
		c.hist.NavigateBack()
	case "home":
		c.hist.NavigateTo(c.home)
	case "field":
		fd := ParseField(rest)
		if fd == (model.FieldDescriptor{}) {
			c.term.Println("usage: field password | field name=email label=\"Email address\"")
			return true
		}
		c.sess.ReportFieldFocus(fd)
	case "ask", "say":
		c.sess.SubmitUserMessage(rest)
	case "close", "dismiss":
		c.sess.DismissAdvisory()
	case "report":
		if c.sess.RequestSiteReport() == advisory.Dropped {
			c.term.Println("nothing to report yet")
		}
	case "help":
		c.sess.ShowHelp()
	case "?", "commands":
		c.term.Println(usage)
	default:
		if n, err := strconv.Atoi(cmd); err == nil {
			a, ok := c.term.Choice(n)
			if !ok || !c.sess.Act(a) {
				c.term.Println("no such button")
			}
			return true
		}
		if strings.Contains(cmd, ".") && rest == "" {
			c.hist.Visit(cmd)
			return true
		}
		c.term.Println("unknown command; type \"commands\" for a list")
	}
	return true
}

// Run reads commands from r until EOF, quit or ctx is done.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			if !c.Exec(line) {
				return nil
			}
		}
	}
}

// ParseField reads "password" or key=value pairs (quotes allowed) into a
// field descriptor. A bare word is the input type.
func ParseField(s string) model.FieldDescriptor {
	var fd model.FieldDescriptor
	for _, tok := range splitQuoted(s) {
		k, v, ok := strings.Cut(tok, "=")
		if !ok {
			fd.Type = tok
			continue
		}
		switch strings.ToLower(k) {
		case "name":
			fd.Name = v
		case "id":
			fd.ID = v
		case "type":
			fd.Type = v
		case "autocomplete":
			fd.Autocomplete = v
		case "label":
			fd.Label = v
		case "placeholder":
			fd.Placeholder = v
		}
	}
	return fd
}

func splitQuoted(s string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
