// Package amp holds the AMP-specific leaves: cache URL derivation and the
// binding to the external structural validator.
package amp

import (
	"fmt"
	"net/url"
	"strings"
)

// CacheHost is the shared AMP cache serving cached copies of AMP pages.
const CacheHost = "cdn.ampproject.org"

// CacheURL derives the address of the cached copy of raw on the shared AMP
// cache. The publisher domain becomes a subdomain using the curls
// encoding: existing hyphens double, dots become hyphens, so example.com
// is served from example-com.cdn.ampproject.org.
func CacheURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", raw, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("no host in %q", raw)
	}

	sub := strings.ReplaceAll(u.Hostname(), "-", "--")
	sub = strings.ReplaceAll(sub, ".", "-")

	// /c/ is the content prefix; /c/s/ marks an https origin.
	prefix := "/c/"
	if u.Scheme == "https" {
		prefix = "/c/s/"
	}

	host := u.Hostname()
	if p := u.Port(); p != "" {
		host = host + ":" + p
	}
	return "https://" + sub + "." + CacheHost + prefix + host + u.RequestURI(), nil
}

// CacheOrigin returns the origin (scheme://host) a cached copy of raw is
// served from, for CORS checks that present the cache as the requester.
func CacheOrigin(raw string) (string, error) {
	cached, err := CacheURL(raw)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(cached)
	if err != nil {
		return "", err
	}
	return u.Scheme + "://" + u.Host, nil
}
