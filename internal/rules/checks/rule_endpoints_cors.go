package checks

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"amplint/internal/amp"
	"amplint/internal/lint"
)

// corsEndpoints collects the URLs the story asks clients to fetch at
// runtime: the bookend config and any amp-analytics remote configs.
func corsEndpoints(c *lint.Context) []string {
	var endpoints []string
	if src, ok := bookendSrc(c); ok {
		endpoints = append(endpoints, src)
	}
	c.Doc.Find("amp-analytics[config]").Each(func(_ int, s *goquery.Selection) {
		if config, _ := s.Attr("config"); config != "" {
			endpoints = append(endpoints, config)
		}
	})
	return endpoints
}

// checkAccessibleFrom verifies each endpoint honors the AMP CORS protocol
// for requests presenting the given origin: the request carries the
// document's source origin as a query parameter, and the response must
// allow the requesting origin. One result per broken endpoint.
func checkAccessibleFrom(ctx context.Context, c *lint.Context, origin string) []lint.Result {
	sourceOrigin := docOrigin(c)

	var out []lint.Result
	for _, ep := range corsEndpoints(c) {
		abs, err := absURL(c, ep)
		if err != nil {
			out = append(out, lint.Fail(fmt.Sprintf("endpoint %q: %v", ep, err)))
			continue
		}
		reqURL := withQueryParam(abs, "__amp_source_origin", sourceOrigin)
		resp, err := c.Client.Get(ctx, reqURL, map[string]string{"Origin": origin})
		if err != nil {
			out = append(out, lint.Fail(fmt.Sprintf("%s is not accessible from %s: %v", abs, origin, err)))
			continue
		}
		if resp.StatusCode != 200 {
			out = append(out, lint.Fail(fmt.Sprintf("%s returned status %d for %s", abs, resp.StatusCode, origin)))
			continue
		}
		allow := resp.Headers.Get("Access-Control-Allow-Origin")
		if allow != "*" && allow != origin {
			out = append(out, lint.Fail(fmt.Sprintf("%s does not allow CORS requests from %s", abs, origin)))
		}
	}
	return out
}

// EndpointsAreAccessibleFromOrigin checks the story's runtime endpoints
// accept requests from the publisher origin.
type EndpointsAreAccessibleFromOrigin struct{}

func (EndpointsAreAccessibleFromOrigin) Name() string { return "EndpointsAreAccessibleFromOrigin" }

func (EndpointsAreAccessibleFromOrigin) Check(ctx context.Context, c *lint.Context) ([]lint.Result, error) {
	return checkAccessibleFrom(ctx, c, docOrigin(c)), nil
}

// EndpointsAreAccessibleFromCache checks the same endpoints accept
// requests when the page is served from the AMP cache origin.
type EndpointsAreAccessibleFromCache struct{}

func (EndpointsAreAccessibleFromCache) Name() string { return "EndpointsAreAccessibleFromCache" }

func (EndpointsAreAccessibleFromCache) Check(ctx context.Context, c *lint.Context) ([]lint.Result, error) {
	origin, err := amp.CacheOrigin(c.URL)
	if err != nil {
		return []lint.Result{lint.Warn(fmt.Sprintf("no cache origin for %q: %v", c.URL, err))}, nil
	}
	return checkAccessibleFrom(ctx, c, origin), nil
}
