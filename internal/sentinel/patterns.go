package sentinel

import (
	"regexp"

	"github.com/ppiankov/safeharbor/internal/model"
)

// Pattern is one sensitive-field rule. Rules are evaluated in order.
type Pattern struct {
	Name string
	Kind model.FieldKind
	re   *regexp.Regexp
}

// Compiled patterns for sensitive field detection, matched against the
// lower-cased name, id, type, autocomplete, label and placeholder.
var patterns = []Pattern{
	{"password", model.FieldPassword, regexp.MustCompile(`passw(or)?d|\bpwd\b|passcode`)},
	{"email", model.FieldEmail, regexp.MustCompile(`e-?mail`)},
	{"phone", model.FieldPhone, regexp.MustCompile(`phone|mobile|\btel\b|telephone`)},
	{"social-security", model.FieldGeneric, regexp.MustCompile(`social[\s-]*security|\bssn\b`)},
	{"card-number", model.FieldFinancial, regexp.MustCompile(`card[\s-]*(number|num|no)\b|cc-?(number|num)|credit[\s-]*card|debit[\s-]*card`)},
	{"cvv", model.FieldFinancial, regexp.MustCompile(`\bcvv2?\b|\bcvc\b|cc-?csc|security[\s-]*code`)},
	{"security-question", model.FieldGeneric, regexp.MustCompile(`security[\s-]*(question|answer)|maiden[\s-]*name|secret[\s-]*(question|answer)`)},
}

// Patterns returns the ordered rule names and kinds.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}
