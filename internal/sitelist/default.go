package sitelist

// DefaultLists contains the built-in site lists used when no sites.yaml exists.
var DefaultLists = Lists{
	Allow: []string{
		"amazon.com",
		"google.com",
		"aarp.org",
		"medicare.gov",
		"ssa.gov",
		"apple.com",
		"microsoft.com",
		"walmart.com",
	},
	Caution: []string{
		"unknown-site",
		"new-domain",
	},
	Deny: []string{
		"scam",
		"phishing",
		"malware",
	},
}

// DefaultYAML returns a commented sites.yaml for init.
func DefaultYAML() string {
	return `# safeharbor site lists
# Generated by: safeharbor init
#
# Classification order (cannot be changed):
#   1. allow   exact domain match ("www." is stripped first) -> safe
#   2. caution substring match anywhere in the domain        -> caution
#   3. deny    substring match anywhere in the domain        -> unsafe
#   4. anything else                                         -> pending
#
# Edits are picked up by "safeharbor serve" without a restart.

allow:
  - amazon.com
  - google.com
  - aarp.org
  - medicare.gov
  - ssa.gov
  - apple.com
  - microsoft.com
  - walmart.com

caution:
  - unknown-site
  - new-domain

deny:
  - scam
  - phishing
  - malware
`
}
