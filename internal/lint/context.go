package lint

import (
	"net/textproto"

	"github.com/PuerkitoBio/goquery"

	"amplint/internal/fetch"
)

// RawDocument holds the fetched bytes and response headers exactly as
// received, for rules that need content the parsed handle does not expose.
type RawDocument struct {
	Body    string
	Headers map[string]string
}

// Context is the immutable snapshot of one document fetch. It is shared by
// reference across every concurrently running rule in a lint pass and must
// not be mutated after construction.
type Context struct {
	// URL is the address the document was fetched from. Empty when the
	// document was read from stdin.
	URL string

	// Doc is the parsed document. Rules treat it as read-only.
	Doc *goquery.Document

	// Headers are the request headers to use for any outbound request a
	// rule issues, so probes present the same identity as the original fetch.
	Headers map[string]string

	Raw RawDocument

	// Client performs all rule network access. It funnels every call
	// through the process-wide network gate.
	Client *fetch.Client
}

// RawHeader looks up a response header case-insensitively.
func (c *Context) RawHeader(name string) (string, bool) {
	want := textproto.CanonicalMIMEHeaderKey(name)
	for k, v := range c.Raw.Headers {
		if textproto.CanonicalMIMEHeaderKey(k) == want {
			return v, true
		}
	}
	return "", false
}
