package sitelist

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lists holds the raw domain tokens organized by tier.
type Lists struct {
	Allow   []string `yaml:"allow"`
	Caution []string `yaml:"caution"`
	Deny    []string `yaml:"deny"`
}

// DefaultPath returns ~/.safeharbor/sites.yaml, or "" if home is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".safeharbor", "sites.yaml")
}

// Load reads site lists from a YAML file. Falls back to defaults if file doesn't exist.
func Load(path string) (Lists, error) {
	l, _, err := LoadWithHash(path)
	return l, err
}

// LoadWithHash loads site lists and returns the SHA-256 of the raw file.
// When no file exists (defaults used), the hash is the SHA-256 of empty input.
func LoadWithHash(path string) (Lists, string, error) {
	if path == "" {
		path = DefaultPath()
	}

	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Lists{}, "", fmt.Errorf("failed to read site lists: %w", err)
		}
	}

	hash := Hash(data)
	if len(data) == 0 {
		return DefaultLists.Clone(), hash, nil
	}

	var l Lists
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Lists{}, "", fmt.Errorf("failed to parse site lists: %w", err)
	}

	return l.Normalize(), hash, nil
}

// Hash returns "sha256:<hex>" of raw list bytes.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(h[:])
}

// Normalize lower-cases and trims every token, dropping empties and
// stripping a leading "www." from allow entries.
func (l Lists) Normalize() Lists {
	return Lists{
		Allow:   normalize(l.Allow, true),
		Caution: normalize(l.Caution, false),
		Deny:    normalize(l.Deny, false),
	}
}

// Clone returns a deep copy.
func (l Lists) Clone() Lists {
	return Lists{
		Allow:   append([]string(nil), l.Allow...),
		Caution: append([]string(nil), l.Caution...),
		Deny:    append([]string(nil), l.Deny...),
	}
}

// Add appends a token to the named list ("allow", "caution" or "deny").
func (l *Lists) Add(list, token string) error {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	switch list {
	case "allow":
		l.Allow = append(l.Allow, strings.TrimPrefix(token, "www."))
	case "caution":
		l.Caution = append(l.Caution, token)
	case "deny":
		l.Deny = append(l.Deny, token)
	default:
		return fmt.Errorf("unknown list %q (want allow, caution or deny)", list)
	}
	return nil
}

// ToMap returns the lists as a map for serialization.
func (l Lists) ToMap() map[string]any {
	return map[string]any{
		"allow":   l.Allow,
		"caution": l.Caution,
		"deny":    l.Deny,
	}
}

func normalize(in []string, stripWWW bool) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if stripWWW {
			s = strings.TrimPrefix(s, "www.")
		}
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
