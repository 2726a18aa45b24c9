package mcp

import (
	"context"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/safeharbor/internal/audit"
	"github.com/ppiankov/safeharbor/internal/model"
	"github.com/ppiankov/safeharbor/internal/service"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

// --- Input/Output types ---

// ClassifyInput defines parameters for the safeharbor_classify tool.
type ClassifyInput struct {
	URL string `json:"url" jsonschema:"website address to rate"`
}

// AskInput defines parameters for the safeharbor_ask tool.
type AskInput struct {
	Text string `json:"text" jsonschema:"the question, in plain language"`
	URL  string `json:"url,omitempty" jsonschema:"website the question is about"`
}

// CheckFieldInput defines parameters for the safeharbor_check_field tool.
type CheckFieldInput struct {
	URL          string `json:"url" jsonschema:"website hosting the form"`
	Name         string `json:"name,omitempty" jsonschema:"field name attribute"`
	ID           string `json:"id,omitempty" jsonschema:"field id attribute"`
	Type         string `json:"type,omitempty" jsonschema:"field type attribute (e.g. password, email, tel)"`
	Autocomplete string `json:"autocomplete,omitempty" jsonschema:"field autocomplete attribute"`
	Label        string `json:"label,omitempty" jsonschema:"visible label text"`
	Placeholder  string `json:"placeholder,omitempty" jsonschema:"placeholder text"`
}

// SuggestInput defines parameters for the safeharbor_suggest tool.
type SuggestInput struct {
	Query string `json:"query" jsonschema:"partial address or site name"`
}

// SuggestOutput lists trusted completions.
type SuggestOutput struct {
	Suggestions []sitelist.Suggestion `json:"suggestions"`
}

// --- Handlers ---

func (s *Server) handleClassify(ctx context.Context, req *mcpsdk.CallToolRequest, input ClassifyInput) (*mcpsdk.CallToolResult, service.Verdict, error) {
	v, err := s.svc.Classify(input.URL)
	if err != nil {
		return nil, service.Verdict{}, err
	}
	s.recordAudit(audit.AuditEntry{
		Event:  audit.EventNavigation,
		Domain: v.Domain,
		Tier:   v.Tier,
		Detail: v.Rationale,
	})

	// Unsafe verdicts surface as tool errors so agents stop before visiting.
	if v.Tier == string(model.TierUnsafe) {
		return &mcpsdk.CallToolResult{IsError: true}, v, nil
	}
	return nil, v, nil
}

func (s *Server) handleAsk(ctx context.Context, req *mcpsdk.CallToolRequest, input AskInput) (*mcpsdk.CallToolResult, service.Answer, error) {
	a, err := s.svc.Ask(input.Text, input.URL)
	if err != nil {
		return nil, service.Answer{}, err
	}
	s.recordAudit(audit.AuditEntry{Event: audit.EventMessage, Domain: a.Domain, Detail: a.Intent})
	return nil, a, nil
}

func (s *Server) handleCheckField(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckFieldInput) (*mcpsdk.CallToolResult, service.FieldCheck, error) {
	fd := fieldDescriptor(input)
	if fd == (model.FieldDescriptor{}) {
		return nil, service.FieldCheck{}, errors.New("at least one field attribute is required")
	}

	fc, err := s.svc.CheckField(input.URL, fd)
	if err != nil {
		return nil, service.FieldCheck{}, err
	}
	if fc.Sensitive {
		s.recordAudit(audit.AuditEntry{Event: audit.EventFieldFocus, Domain: fc.Domain, Tier: fc.Tier, Detail: fc.Kind})
	}
	return nil, fc, nil
}

func (s *Server) handleSuggest(ctx context.Context, req *mcpsdk.CallToolRequest, input SuggestInput) (*mcpsdk.CallToolResult, SuggestOutput, error) {
	return nil, SuggestOutput{Suggestions: s.svc.Suggest(input.Query)}, nil
}

func fieldDescriptor(in CheckFieldInput) model.FieldDescriptor {
	return model.FieldDescriptor{
		Name:         in.Name,
		ID:           in.ID,
		Type:         in.Type,
		Autocomplete: in.Autocomplete,
		Label:        in.Label,
		Placeholder:  in.Placeholder,
	}
}
