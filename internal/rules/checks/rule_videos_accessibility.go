package checks

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"amplint/internal/lint"
)

// VideosHaveAltText reports every amp-video without a title attribute,
// one result per video.
type VideosHaveAltText struct{}

func (VideosHaveAltText) Name() string { return "VideosHaveAltText" }

func (VideosHaveAltText) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	var out []lint.Result
	c.Doc.Find("amp-video").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("title"); ok {
			return
		}
		src, _ := s.Attr("src")
		out = append(out, lint.Warn(fmt.Sprintf("<amp-video src=%q> has no title attribute", src)))
	})
	return out, nil
}

// VideosAreSubtitled reports every amp-video with no track child, one
// result per video.
type VideosAreSubtitled struct{}

func (VideosAreSubtitled) Name() string { return "VideosAreSubtitled" }

func (VideosAreSubtitled) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	var out []lint.Result
	c.Doc.Find("amp-video").Each(func(_ int, s *goquery.Selection) {
		if s.Find("track").Length() > 0 {
			return
		}
		src, _ := s.Attr("src")
		out = append(out, lint.Warn(fmt.Sprintf("<amp-video src=%q> has no subtitle track", src)))
	})
	return out, nil
}
