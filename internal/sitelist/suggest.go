package sitelist

import (
	"net/url"
	"strings"
)

const maxSuggestions = 5

// Suggestion is an address-bar completion pointing at a trusted destination.
type Suggestion struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IconKey     string `json:"icon_key"`
}

// knownSites gives friendlier titles for well-known allow-list entries.
var knownSites = map[string][2]string{
	"amazon.com":    {"Amazon", "Trusted online shopping"},
	"aarp.org":      {"AARP", "Resources for seniors"},
	"medicare.gov":  {"Medicare", "Official health information"},
	"ssa.gov":       {"Social Security", "Government services"},
	"apple.com":     {"Apple", "Technology and support"},
	"microsoft.com": {"Microsoft", "Software and services"},
	"google.com":    {"Google", "Search the web"},
	"walmart.com":   {"Walmart", "Everyday shopping"},
}

// Suggest returns up to five completions for a partially typed query.
// Only allow-list domains are offered. A query that does not look like a
// host gets a search entry first when fewer than three sites matched.
func Suggest(l Lists, query string) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Suggestion
	for _, domain := range l.Allow {
		title, desc := describe(domain)
		if !strings.Contains(domain, q) && !strings.Contains(strings.ToLower(title), q) {
			continue
		}
		out = append(out, Suggestion{
			URL:         "https://www." + domain,
			Title:       title,
			Description: desc,
			IconKey:     "icon-shield",
		})
	}

	if !strings.Contains(q, ".") && len(out) < 3 {
		search := Suggestion{
			URL:         "https://www.google.com/search?q=" + url.QueryEscape(strings.TrimSpace(query)),
			Title:       `Search for "` + strings.TrimSpace(query) + `"`,
			Description: "Safe Google search",
			IconKey:     "icon-search",
		}
		out = append([]Suggestion{search}, out...)
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func describe(domain string) (string, string) {
	if d, ok := knownSites[domain]; ok {
		return d[0], d[1]
	}
	name := domain
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name, "Trusted site"
}
