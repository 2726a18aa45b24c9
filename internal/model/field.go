package model

import "time"

// FieldKind classifies a sensitive input field.
type FieldKind string

const (
	FieldPassword  FieldKind = "password"
	FieldEmail     FieldKind = "email"
	FieldPhone     FieldKind = "phone"
	FieldFinancial FieldKind = "financial"
	FieldGeneric   FieldKind = "generic"
)

// FieldDescriptor is what the embedded content reports when an input gains focus.
type FieldDescriptor struct {
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty"`
	Autocomplete string `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder  string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// SensitiveFieldEvent is emitted at most once per navigation when the user
// focuses an input that looks like it collects personal data.
type SensitiveFieldEvent struct {
	Kind    FieldKind       `json:"kind"`
	Pattern string          `json:"pattern"`
	Domain  string          `json:"domain"`
	Field   FieldDescriptor `json:"field"`
}

// Speaker identifies who produced a conversation turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// RichText is Markdown-formatted assistant output.
type RichText string

// ConversationTurn is one entry in the append-only session conversation.
type ConversationTurn struct {
	Speaker Speaker   `json:"speaker"`
	Text    RichText  `json:"text"`
	At      time.Time `json:"at"`
}
