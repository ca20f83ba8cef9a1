package checks

import (
	"context"
	"strings"

	"amplint/internal/lint"
)

// ViewportDisablesZooming warns when the viewport meta tag turns off
// pinch-to-zoom, an accessibility problem on any page.
type ViewportDisablesZooming struct{}

func (ViewportDisablesZooming) Name() string { return "ViewportDisablesZooming" }

func (ViewportDisablesZooming) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	content, ok := c.Doc.Find(`meta[name="viewport"]`).First().Attr("content")
	if !ok {
		return []lint.Result{lint.Pass()}, nil
	}
	for _, part := range strings.Split(content, ",") {
		key, value, _ := strings.Cut(part, "=")
		if strings.TrimSpace(key) == "user-scalable" {
			switch strings.TrimSpace(value) {
			case "no", "0":
				return []lint.Result{lint.Warn("<meta name=viewport> disables zooming")}, nil
			}
		}
	}
	return []lint.Result{lint.Pass()}, nil
}
