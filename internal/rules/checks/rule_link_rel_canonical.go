package checks

import (
	"context"
	"fmt"

	"amplint/internal/lint"
)

// LinkRelCanonicalIsOk verifies the document declares a canonical link.
// Without one, the page cannot be associated with its canonical origin.
type LinkRelCanonicalIsOk struct{}

func (LinkRelCanonicalIsOk) Name() string { return "LinkRelCanonicalIsOk" }

func (LinkRelCanonicalIsOk) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	href, ok := c.Doc.Find("link[rel=canonical]").First().Attr("href")
	if !ok {
		return []lint.Result{lint.Fail("<link rel=canonical> not specified")}, nil
	}
	abs, err := absURL(c, href)
	if err != nil {
		return []lint.Result{lint.Fail(fmt.Sprintf("<link rel=canonical> is not a valid URL: %q", href))}, nil
	}
	return []lint.Result{lint.PassWith(abs)}, nil
}
