// Package checks holds the individual lint rules, one file per rule.
package checks

import (
	"fmt"
	"net/url"
	"strings"

	"amplint/internal/lint"
)

// absURL resolves an attribute value against the document URL.
func absURL(c *lint.Context, href string) (string, error) {
	base, err := url.Parse(c.URL)
	if err != nil {
		return "", fmt.Errorf("parse document url: %w", err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// docOrigin returns the scheme://host origin the document was served from,
// or "" for stdin documents.
func docOrigin(c *lint.Context) string {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// withQueryParam appends key=value to a URL's query string.
func withQueryParam(rawURL, key, value string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + key + "=" + url.QueryEscape(value)
}
