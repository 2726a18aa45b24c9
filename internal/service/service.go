// Package service answers one-shot questions about a URL for the gRPC,
// HTTP and MCP front ends. It shares the classifier, responder and field
// patterns with interactive sessions but keeps no per-user state.
package service

import (
	"errors"
	"strings"

	"github.com/ppiankov/safeharbor/internal/advisory"
	"github.com/ppiankov/safeharbor/internal/classify"
	"github.com/ppiankov/safeharbor/internal/metrics"
	"github.com/ppiankov/safeharbor/internal/model"
	"github.com/ppiankov/safeharbor/internal/respond"
	"github.com/ppiankov/safeharbor/internal/sentinel"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

// ErrEmptyURL is returned when a request names no URL.
var ErrEmptyURL = errors.New("url is required")

// ErrEmptyText is returned when a chat question is blank.
var ErrEmptyText = errors.New("text is required")

// Verdict is the wire form of a classification.
type Verdict struct {
	URL         string `json:"url"`
	Domain      string `json:"domain"`
	Tier        string `json:"tier"`
	Label       string `json:"label"`
	IconKey     string `json:"icon_key"`
	Rationale   string `json:"rationale"`
	Recommended string `json:"recommended"`
	ListHash    string `json:"list_hash,omitempty"`
}

// Answer is the assistant's reply to a question about a page.
type Answer struct {
	Intent string `json:"intent"`
	Domain string `json:"domain"`
	Tier   string `json:"tier"`
	Text   string `json:"text"`
}

// FieldCheck reports whether focusing a field on a page warrants an
// advisory, and what it would say.
type FieldCheck struct {
	Domain    string   `json:"domain"`
	Tier      string   `json:"tier"`
	Sensitive bool     `json:"sensitive"`
	Kind      string   `json:"kind,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Advise    bool     `json:"advise"`
	Title     string   `json:"title,omitempty"`
	Message   string   `json:"message,omitempty"`
	Actions   []string `json:"actions,omitempty"`
}

// Service is safe for concurrent use.
type Service struct {
	classifier *classify.Classifier
	responder  *respond.Generator
	metrics    *metrics.Metrics
}

// New creates a Service. m may be nil.
func New(c *classify.Classifier, m *metrics.Metrics) *Service {
	return &Service{classifier: c, responder: respond.New(), metrics: m}
}

// Classifier returns the classifier, for list reloads.
func (s *Service) Classifier() *classify.Classifier {
	return s.classifier
}

// Classify returns the verdict for rawURL.
func (s *Service) Classify(rawURL string) (Verdict, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Verdict{}, ErrEmptyURL
	}
	v := s.classifier.Classify(rawURL)
	s.metrics.Classified(string(v.Tier))
	return Verdict{
		URL:         rawURL,
		Domain:      v.Domain,
		Tier:        string(v.Tier),
		Label:       v.Tier.Label(),
		IconKey:     v.Tier.IconKey(),
		Rationale:   v.Rationale,
		Recommended: string(v.Recommended),
		ListHash:    s.classifier.ListHash(),
	}, nil
}

// Ask answers a chat question in the context of rawURL. An empty URL
// answers for an unchecked page.
func (s *Service) Ask(text, rawURL string) (Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Answer{}, ErrEmptyText
	}

	ctx := respond.Context{Tier: model.TierPending}
	if strings.TrimSpace(rawURL) != "" {
		v := s.classifier.Classify(rawURL)
		ctx = respond.Context{Domain: v.Domain, Tier: v.Tier}
	}

	intent := respond.Classify(text)
	s.metrics.MessageAnswered(intent)
	return Answer{
		Intent: intent,
		Domain: ctx.Domain,
		Tier:   string(ctx.Tier),
		Text:   string(s.responder.Respond(text, ctx)),
	}, nil
}

// CheckField matches fd against the sensitive-field patterns and decides
// whether a session on rawURL would raise a disclosure advisory.
func (s *Service) CheckField(rawURL string, fd model.FieldDescriptor) (FieldCheck, error) {
	if strings.TrimSpace(rawURL) == "" {
		return FieldCheck{}, ErrEmptyURL
	}
	v := s.classifier.Classify(rawURL)
	out := FieldCheck{Domain: v.Domain, Tier: string(v.Tier)}

	p, ok := sentinel.Match(fd)
	if !ok {
		return out, nil
	}
	out.Sensitive = true
	out.Kind = string(p.Kind)
	out.Pattern = p.Name
	s.metrics.FieldEvent(out.Kind)

	if v.Tier == model.TierSafe {
		return out, nil
	}
	payload, actions := advisory.FieldAdvisory(v, p.Kind)
	out.Advise = true
	out.Title = payload.Title
	out.Message = string(payload.Body)
	for _, a := range advisory.ActionIDs(actions) {
		out.Actions = append(out.Actions, string(a))
	}
	return out, nil
}

// Suggest returns safe-site completions for an address-bar query.
func (s *Service) Suggest(query string) []sitelist.Suggestion {
	return sitelist.Suggest(s.classifier.Lists(), query)
}
