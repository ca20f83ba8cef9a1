package checks

import (
	"context"
	"encoding/json"
	"fmt"

	"amplint/internal/amp"
	"amplint/internal/lint"
)

// bookendSrc finds the story's bookend configuration URL, if any. A story
// without a bookend is fine; these rules then have nothing to report.
func bookendSrc(c *lint.Context) (string, bool) {
	if v, ok := c.Doc.Find("amp-story").First().Attr("bookend-config-src"); ok && v != "" {
		return v, true
	}
	if v, ok := c.Doc.Find("amp-story-bookend").First().Attr("src"); ok && v != "" {
		return v, true
	}
	return "", false
}

func checkBookend(ctx context.Context, c *lint.Context, bookendURL, from string, headers map[string]string) lint.Result {
	resp, err := c.Client.Get(ctx, bookendURL, headers)
	if err != nil {
		return lint.Fail(fmt.Sprintf("bookend %s is not reachable from %s: %v", bookendURL, from, err))
	}
	if resp.StatusCode != 200 {
		return lint.Fail(fmt.Sprintf("bookend %s returned status %d from %s", bookendURL, resp.StatusCode, from))
	}
	if !json.Valid(resp.Body) {
		return lint.Fail(fmt.Sprintf("bookend %s is not JSON", bookendURL))
	}
	return lint.Pass()
}

// BookendAppearsOnOrigin fetches the story bookend from the publisher
// origin and checks it resolves to JSON.
type BookendAppearsOnOrigin struct{}

func (BookendAppearsOnOrigin) Name() string { return "BookendAppearsOnOrigin" }

func (BookendAppearsOnOrigin) Check(ctx context.Context, c *lint.Context) ([]lint.Result, error) {
	src, ok := bookendSrc(c)
	if !ok {
		return []lint.Result{}, nil
	}
	abs, err := absURL(c, src)
	if err != nil {
		return []lint.Result{lint.Fail(fmt.Sprintf("bookend src %q: %v", src, err))}, nil
	}
	return []lint.Result{checkBookend(ctx, c, abs, "origin", nil)}, nil
}

// BookendAppearsOnCache fetches the bookend through the AMP cache, as the
// cache's viewer would, presenting the cache origin for CORS.
type BookendAppearsOnCache struct{}

func (BookendAppearsOnCache) Name() string { return "BookendAppearsOnCache" }

func (BookendAppearsOnCache) Check(ctx context.Context, c *lint.Context) ([]lint.Result, error) {
	src, ok := bookendSrc(c)
	if !ok {
		return []lint.Result{}, nil
	}
	abs, err := absURL(c, src)
	if err != nil {
		return []lint.Result{lint.Fail(fmt.Sprintf("bookend src %q: %v", src, err))}, nil
	}
	cached, err := amp.CacheURL(abs)
	if err != nil {
		return []lint.Result{lint.Fail(fmt.Sprintf("no cache URL for bookend %s: %v", abs, err))}, nil
	}
	origin, err := amp.CacheOrigin(c.URL)
	if err != nil {
		return []lint.Result{lint.Fail(fmt.Sprintf("no cache origin for %s: %v", c.URL, err))}, nil
	}
	headers := map[string]string{"Origin": origin}
	return []lint.Result{checkBookend(ctx, c, cached, "cache", headers)}, nil
}
