package classify

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/ppiankov/safeharbor/internal/model"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

// Classifier maps URLs to safety verdicts against injected site lists.
// Lists can be swapped at runtime; Classify always sees a consistent set.
type Classifier struct {
	mu      sync.RWMutex
	lists   sitelist.Lists
	allow   map[string]struct{}
	listSum string
}

// New creates a Classifier over the given lists.
func New(l sitelist.Lists) *Classifier {
	c := &Classifier{}
	c.SetLists(l, "")
	return c
}

// NewDefault creates a Classifier with the built-in lists, hashed the same
// way as a missing list file.
func NewDefault() *Classifier {
	c := &Classifier{}
	c.SetLists(sitelist.DefaultLists, sitelist.Hash(nil))
	return c
}

// SetLists atomically replaces the lists. hash identifies the source file.
func (c *Classifier) SetLists(l sitelist.Lists, hash string) {
	l = l.Normalize()
	allow := make(map[string]struct{}, len(l.Allow))
	for _, d := range l.Allow {
		allow[d] = struct{}{}
	}

	c.mu.Lock()
	c.lists = l
	c.allow = allow
	c.listSum = hash
	c.mu.Unlock()
}

// Lists returns a copy of the active lists.
func (c *Classifier) Lists() sitelist.Lists {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lists.Clone()
}

// ListHash returns the hash passed to the last SetLists call.
func (c *Classifier) ListHash() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.listSum
}

// Classify returns the verdict for a URL. Total: never fails.
//
// Evaluation order (must not be changed):
//  1. Allow list, exact domain match -> safe
//  2. Caution tokens, substring match -> caution
//  3. Deny tokens, substring match -> unsafe
//  4. Otherwise -> pending
func (c *Classifier) Classify(rawURL string) model.Verdict {
	domain := ExtractDomain(rawURL)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.allow[domain]; ok {
		return verdict(model.TierSafe, domain)
	}
	if token, ok := containsAny(domain, c.lists.Caution); ok {
		v := verdict(model.TierCaution, domain)
		v.Rationale += fmt.Sprintf(" (matched %q)", token)
		return v
	}
	if token, ok := containsAny(domain, c.lists.Deny); ok {
		v := verdict(model.TierUnsafe, domain)
		v.Rationale += fmt.Sprintf(" (matched %q)", token)
		return v
	}
	return verdict(model.TierPending, domain)
}

// ExtractDomain returns the lower-cased host of rawURL without a leading
// "www." label. Input without a scheme is read as a bare host. Input that
// does not parse to a host is returned trimmed and lower-cased, minus any
// leading "www.".
func ExtractDomain(rawURL string) string {
	raw := strings.ToLower(strings.TrimSpace(rawURL))

	ref := raw
	if !strings.Contains(ref, "://") {
		ref = "//" + ref
	}
	u, err := url.Parse(ref)
	if err != nil || u.Hostname() == "" {
		return strings.TrimPrefix(raw, "www.")
	}

	host := strings.TrimSuffix(u.Hostname(), ".")
	return strings.TrimPrefix(host, "www.")
}

// Rationale returns the user-facing explanation for a tier on a domain.
func Rationale(tier model.Tier, domain string) string {
	switch tier {
	case model.TierSafe:
		return "I'll keep watch while you browse • You're safely on " + domain
	case model.TierCaution:
		return "I don't have complete info on this site • Let's be extra cautious"
	case model.TierUnsafe:
		return "This site looks risky • I suggest we go somewhere safer"
	default:
		return "I'm checking this site to make sure it's safe • Just a moment"
	}
}

func verdict(tier model.Tier, domain string) model.Verdict {
	return model.Verdict{
		Tier:        tier,
		Domain:      domain,
		Rationale:   Rationale(tier, domain),
		Recommended: model.RecommendedFor(tier),
	}
}

func containsAny(domain string, tokens []string) (string, bool) {
	for _, t := range tokens {
		if strings.Contains(domain, t) {
			return t, true
		}
	}
	return "", false
}
