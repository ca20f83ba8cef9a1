package checks

import (
	"context"
	"fmt"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"amplint/internal/lint"
)

// maxVideoBytes is the size above which caches stop inlining video
// content.
const maxVideoBytes = 4 << 20

// AmpVideoIsSmall issues a HEAD request per amp-video source and fails
// any that report more than 4MB of content.
type AmpVideoIsSmall struct{}

func (AmpVideoIsSmall) Name() string { return "AmpVideoIsSmall" }

func (AmpVideoIsSmall) Check(ctx context.Context, c *lint.Context) ([]lint.Result, error) {
	srcs := videoSources(c)

	var out []lint.Result
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		abs, err := absURL(c, src)
		if err != nil {
			out = append(out, lint.Warn(fmt.Sprintf("video %q: %v", src, err)))
			continue
		}
		resp, err := c.Client.Head(ctx, abs, nil)
		if err != nil {
			out = append(out, lint.Warn(fmt.Sprintf("could not check size of %s: %v", abs, err)))
			continue
		}
		length := resp.Headers.Get("Content-Length")
		if length == "" {
			out = append(out, lint.Warn(fmt.Sprintf("%s did not report a size", abs)))
			continue
		}
		n, err := strconv.ParseInt(length, 10, 64)
		if err != nil {
			out = append(out, lint.Warn(fmt.Sprintf("%s reported an unreadable size %q", abs, length)))
			continue
		}
		if n > maxVideoBytes {
			out = append(out, lint.Fail(fmt.Sprintf("%s is %d bytes; videos over 4MB are not cached", abs, n)))
		}
	}
	return out, nil
}

// videoSources collects the src of every amp-video and its source
// children, in document order, without duplicates.
func videoSources(c *lint.Context) []string {
	seen := make(map[string]struct{})
	var srcs []string
	add := func(src string, ok bool) {
		if !ok || src == "" {
			return
		}
		if _, dup := seen[src]; dup {
			return
		}
		seen[src] = struct{}{}
		srcs = append(srcs, src)
	}
	c.Doc.Find("amp-video").Each(func(_ int, s *goquery.Selection) {
		add(s.Attr("src"))
		s.Find("source").Each(func(_ int, source *goquery.Selection) {
			add(source.Attr("src"))
		})
	})
	return srcs
}
