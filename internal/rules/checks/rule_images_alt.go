package checks

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"amplint/internal/lint"
)

// ImagesHaveAltText reports every amp-img missing alt text, one result
// per offending image. No offenders means nothing to report.
type ImagesHaveAltText struct{}

func (ImagesHaveAltText) Name() string { return "ImagesHaveAltText" }

func (ImagesHaveAltText) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	var out []lint.Result
	c.Doc.Find("amp-img").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("alt"); ok {
			return
		}
		src, _ := s.Attr("src")
		out = append(out, lint.Warn(fmt.Sprintf("<amp-img src=%q> is missing alt text", src)))
	})
	return out, nil
}
