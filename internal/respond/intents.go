package respond

import (
	"fmt"
	"strings"

	"github.com/ppiankov/safeharbor/internal/model"
)

// Intent is one row of the keyword table. The first intent with any
// keyword contained in the message wins.
type Intent struct {
	Name     string
	Keywords []string
	render   func(Context) string
}

// intents is ordered; order is the tie-break when several keywords appear.
var intents = []Intent{
	{Name: "safety", Keywords: []string{"safe", "secure"}, render: safetyAnswer},
	{Name: "scam", Keywords: []string{"scam", "phishing"}, render: scamAnswer},
	{Name: "password", Keywords: []string{"password", "login"}, render: passwordAnswer},
	{Name: "shopping", Keywords: []string{"shopping", "buy"}, render: shoppingAnswer},
}

func safetyAnswer(c Context) string {
	switch c.Tier {
	case model.TierSafe:
		return fmt.Sprintf(`**Great news! This website is safe to use**

I've checked %s and everything looks good. Here's what I found:

- It's on my list of trusted websites
- It's a legitimate, well-known website
- No safety concerns detected

_Helpful tip:_ When visiting banking or shopping sites, always double-check that the web address matches exactly what you expect to see.`, c.domain())
	case model.TierCaution:
		return fmt.Sprintf(`**Please be extra careful on %s**

I don't have complete safety information about this website. To protect yourself:

- Don't enter passwords or personal information
- Be cautious of any download requests
- Leave if anything seems suspicious

This site is rated **%s**.`, c.domain(), c.Tier.Label())
	case model.TierUnsafe:
		return fmt.Sprintf(`**%s may not be safe**

This website matches patterns I associate with scams or harmful software. It might try to:

- Steal your personal information
- Install harmful software
- Trick you into sharing passwords

I strongly recommend leaving. This site is rated **%s**.`, c.domain(), c.Tier.Label())
	default:
		return fmt.Sprintf(`**I'm still checking %s**

This website isn't on my trusted list yet, so I can't vouch for it. Until I know more:

- Hold off on entering passwords or card numbers
- Stick to sites you already know for anything important

Ask me again any time, or press "check this site now".`, c.domain())
	}
}

func scamAnswer(c Context) string {
	var b strings.Builder
	b.WriteString(`**How to Spot Online Scams**

I'm always watching for these warning signs to keep you safe:

- Messages that say "act now or lose out"
- Emails asking for your password
- Offers that seem too good to be true
- Messages from unknown companies
- Lots of spelling mistakes

`)
	switch c.Tier {
	case model.TierSafe:
		fmt.Fprintf(&b, "_Good news:_ I haven't found any scam signs on %s. You're safe here.", c.domain())
	case model.TierUnsafe:
		fmt.Fprintf(&b, "_Warning:_ %s looks like it could be a scam. I suggest we go somewhere safer.", c.domain())
	default:
		fmt.Fprintf(&b, "_About %s:_ I don't have complete information on this site (%s), so keep an eye out for these signs.", c.domain(), c.Tier.Label())
	}
	return b.String()
}

func passwordAnswer(c Context) string {
	var b strings.Builder
	b.WriteString(`**Keeping Your Passwords Safe**

Here are simple ways to protect your accounts:

- Use a different password for each website
- Turn on extra security when websites offer it
- Never give your password to anyone in an email
- Consider using a password helper app
- Change your passwords a few times a year

`)
	switch c.Tier {
	case model.TierSafe:
		fmt.Fprintf(&b, "_About this site:_ %s is a trusted website, so it's fine to log in here.", c.domain())
	case model.TierUnsafe:
		fmt.Fprintf(&b, "_About this site:_ please do **not** log in to %s. It may not be safe.", c.domain())
	default:
		fmt.Fprintf(&b, "_About this site:_ I'd avoid logging in to %s until we know more about it (%s).", c.domain(), c.Tier.Label())
	}
	return b.String()
}

func shoppingAnswer(c Context) string {
	var b strings.Builder
	b.WriteString(`**Safe Online Shopping Guide**

When you shop online, make sure:

- Your payment information is protected
- The website accepts safe payment methods
- You can return items if needed
- Other customers have had good experiences
- You can contact them if there's a problem

`)
	switch c.Tier {
	case model.TierSafe:
		fmt.Fprintf(&b, "_About %s:_ This looks like a trustworthy shopping site that protects its customers.", c.domain())
	case model.TierUnsafe:
		fmt.Fprintf(&b, "_About %s:_ Please don't buy anything here. This site may not be safe.", c.domain())
	default:
		fmt.Fprintf(&b, "_About %s:_ I can't confirm this store is trustworthy (%s). Consider buying from a store you know instead.", c.domain(), c.Tier.Label())
	}
	return b.String()
}

func fallbackAnswer(c Context) string {
	return fmt.Sprintf(`**I'm here to keep you safe online**

I'm watching over your browsing to protect you. I can help with:

- Checking if websites are safe to use
- Spotting scams and fake websites
- Giving you personalized safety tips
- Helping with passwords and logging in

What would you like to know about staying safe on _%s_? (Right now this site is rated **%s**.)`, c.domain(), c.Tier.Label())
}
