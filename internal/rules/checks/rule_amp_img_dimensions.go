package checks

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"amplint/internal/lint"
)

// aspectRatioTolerance is how far the declared amp-img aspect ratio may
// drift from the image's intrinsic ratio before the layout visibly warps.
const aspectRatioTolerance = 0.15

// AmpImgHeightWidthIsOk probes each amp-img source over the network and
// compares its intrinsic aspect ratio to the declared width/height. One
// result per mismatched or unprobeable image.
type AmpImgHeightWidthIsOk struct{}

func (AmpImgHeightWidthIsOk) Name() string { return "AmpImgHeightWidthIsOk" }

type declaredImage struct {
	src    string
	width  int
	height int
}

func (AmpImgHeightWidthIsOk) Check(ctx context.Context, c *lint.Context) ([]lint.Result, error) {
	var candidates []declaredImage
	c.Doc.Find("amp-img[src][width][height]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if strings.HasPrefix(src, "data:") {
			return
		}
		w, errW := strconv.Atoi(strings.TrimSpace(attrOr(s, "width")))
		h, errH := strconv.Atoi(strings.TrimSpace(attrOr(s, "height")))
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			return
		}
		candidates = append(candidates, declaredImage{src: src, width: w, height: h})
	})

	var out []lint.Result
	for _, img := range candidates {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		abs, err := absURL(c, img.src)
		if err != nil {
			out = append(out, lint.Warn(fmt.Sprintf("<amp-img src=%q>: %v", img.src, err)))
			continue
		}
		w, h, err := c.Client.ProbeImage(ctx, abs)
		if err != nil {
			out = append(out, lint.Warn(fmt.Sprintf("could not determine dimensions of %s: %v", abs, err)))
			continue
		}
		if h == 0 {
			continue
		}
		declared := float64(img.width) / float64(img.height)
		actual := float64(w) / float64(h)
		if math.Abs(declared-actual)/actual > aspectRatioTolerance {
			out = append(out, lint.Warn(fmt.Sprintf(
				"<amp-img src=%q> declares %dx%d but the image is %dx%d",
				img.src, img.width, img.height, w, h)))
		}
	}
	return out, nil
}

func attrOr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return v
}
