package checks

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"amplint/internal/fetch"
	"amplint/internal/lint"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func httpResponse(status int, headers map[string]string, body []byte) *http.Response {
	h := make(http.Header, len(headers))
	for k, v := range headers {
		h.Set(k, v)
	}
	return &http.Response{
		StatusCode:    status,
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

// noNetwork fails the test if a rule unexpectedly dials out.
func noNetwork(t *testing.T) roundTripperFunc {
	t.Helper()
	return func(req *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected network call: %s %s", req.Method, req.URL)
		return nil, nil
	}
}

func newContext(t *testing.T, docURL, html string, rt http.RoundTripper) *lint.Context {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return &lint.Context{
		URL:    docURL,
		Doc:    doc,
		Raw:    lint.RawDocument{Body: html},
		Client: fetch.NewClient(fetch.WithTransport(rt)),
	}
}
