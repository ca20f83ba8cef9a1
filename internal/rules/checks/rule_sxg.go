package checks

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"amplint/internal/lint"
)

const sxgContentType = "application/signed-exchange"

// SxgVaryOnAcceptAct verifies the origin's Vary header covers Accept and
// AMP-Cache-Transform, so intermediaries never serve a signed exchange to
// a client that asked for HTML or vice versa.
type SxgVaryOnAcceptAct struct{}

func (SxgVaryOnAcceptAct) Name() string { return "SxgVaryOnAcceptAct" }

func (SxgVaryOnAcceptAct) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	vary, _ := c.RawHeader("Vary")
	present := make(map[string]bool)
	for _, token := range strings.Split(vary, ",") {
		present[strings.ToLower(strings.TrimSpace(token))] = true
	}
	var missing []string
	for _, want := range []string{"accept", "amp-cache-transform"} {
		if !present[want] {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return []lint.Result{lint.Fail(fmt.Sprintf("Vary header %q is missing: %s", vary, strings.Join(missing, ", ")))}, nil
	}
	return []lint.Result{lint.Pass()}, nil
}

// SxgContentNegotiationIsOk re-requests the document asking for a signed
// exchange and checks the origin serves one.
type SxgContentNegotiationIsOk struct{}

func (SxgContentNegotiationIsOk) Name() string { return "SxgContentNegotiationIsOk" }

func (SxgContentNegotiationIsOk) Check(ctx context.Context, c *lint.Context) ([]lint.Result, error) {
	resp, err := c.Client.Get(ctx, c.URL, map[string]string{
		"Accept":              sxgContentType + ";v=b3",
		"AMP-Cache-Transform": `google;v="1..8"`,
	})
	if err != nil {
		return []lint.Result{lint.Fail(fmt.Sprintf("signed exchange request failed: %v", err))}, nil
	}
	ct := resp.Headers.Get("Content-Type")
	if !strings.Contains(ct, sxgContentType) {
		return []lint.Result{lint.Fail(fmt.Sprintf("origin returned %q for a signed exchange request", ct))}, nil
	}
	return []lint.Result{lint.Pass()}, nil
}

// SxgAmppkgIsForwarded checks the packager's validity endpoint is
// reachable through the origin, which it must be for signatures to stay
// verifiable.
type SxgAmppkgIsForwarded struct{}

func (SxgAmppkgIsForwarded) Name() string { return "SxgAmppkgIsForwarded" }

func (SxgAmppkgIsForwarded) Check(ctx context.Context, c *lint.Context) ([]lint.Result, error) {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return []lint.Result{lint.Warn(fmt.Sprintf("cannot derive origin from %q", c.URL))}, nil
	}
	validity := u.Scheme + "://" + u.Host + "/amppkg/validity"
	resp, err := c.Client.Get(ctx, validity, nil)
	if err != nil {
		return []lint.Result{lint.Fail(fmt.Sprintf("%s is not reachable: %v", validity, err))}, nil
	}
	if resp.StatusCode != 200 {
		return []lint.Result{lint.Fail(fmt.Sprintf("%s returned status %d; is /amppkg/ forwarded to the packager?", validity, resp.StatusCode))}, nil
	}
	return []lint.Result{lint.Pass()}, nil
}
