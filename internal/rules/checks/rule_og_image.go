package checks

import (
	"context"
	"strings"

	"amplint/internal/lint"
)

// MetadataIncludesOGImageSrc checks for an og:image tag, which link
// unfurlers and sharing surfaces rely on.
type MetadataIncludesOGImageSrc struct{}

func (MetadataIncludesOGImageSrc) Name() string { return "MetadataIncludesOGImageSrc" }

func (MetadataIncludesOGImageSrc) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	content, ok := c.Doc.Find(`meta[property="og:image"]`).First().Attr("content")
	if !ok || strings.TrimSpace(content) == "" {
		return []lint.Result{lint.Warn("<meta property=og:image> is missing")}, nil
	}
	return []lint.Result{lint.Pass()}, nil
}
