package checks

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"amplint/internal/lint"
)

// AmpImgAmpPixelPreferred flags 1x1 amp-img elements used as tracking
// pixels; amp-pixel exists for that and costs no layout work.
type AmpImgAmpPixelPreferred struct{}

func (AmpImgAmpPixelPreferred) Name() string { return "AmpImgAmpPixelPreferred" }

func (AmpImgAmpPixelPreferred) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	var out []lint.Result
	c.Doc.Find(`amp-img[width="1"][height="1"]`).Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		out = append(out, lint.Warn(fmt.Sprintf("<amp-img src=%q> is 1x1; use <amp-pixel> for tracking pixels", src)))
	})
	return out, nil
}
