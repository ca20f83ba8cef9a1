package fetch

import (
	"fmt"
	"sort"
)

// userAgents maps the CLI aliases to the full User-Agent strings they
// stand for. Googlebot variants matter because AMP caches crawl as
// Googlebot and some origins vary on it.
var userAgents = map[string]string{
	"googlebot_mobile":  "Mozilla/5.0 (Linux; Android 6.0.1; Nexus 5X Build/MMB29P) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/99.0.4844.84 Mobile Safari/537.36 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
	"googlebot_desktop": "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; Googlebot/2.1; +http://www.google.com/bot.html) Chrome/99.0.4844.84 Safari/537.36",
	"chrome_mobile":     "Mozilla/5.0 (Linux; Android 10; Pixel 3) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/99.0.4844.88 Mobile Safari/537.36",
	"chrome_desktop":    "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/99.0.4844.84 Safari/537.36",
}

// DefaultUserAgentAlias is what the CLI uses when no -A flag is given.
const DefaultUserAgentAlias = "googlebot_mobile"

// UserAgent resolves a CLI alias to its User-Agent string.
func UserAgent(alias string) (string, error) {
	ua, ok := userAgents[alias]
	if !ok {
		return "", fmt.Errorf("unknown user agent %q (choose one of %v)", alias, UserAgentAliases())
	}
	return ua, nil
}

// UserAgentAliases lists the recognized aliases in stable order.
func UserAgentAliases() []string {
	aliases := make([]string, 0, len(userAgents))
	for alias := range userAgents {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
