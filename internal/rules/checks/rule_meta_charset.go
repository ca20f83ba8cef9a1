package checks

import (
	"context"

	"amplint/internal/lint"
)

// MetaCharsetIsFirst verifies <meta charset> is the first element in
// <head>. Anything before it can be reinterpreted once the charset is
// known.
type MetaCharsetIsFirst struct{}

func (MetaCharsetIsFirst) Name() string { return "MetaCharsetIsFirst" }

func (MetaCharsetIsFirst) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	first := c.Doc.Find("head").Children().First()
	if first.Length() == 0 {
		return []lint.Result{lint.Fail("<head> contains no elements")}, nil
	}
	if _, ok := first.Attr("charset"); !ok || !first.Is("meta") {
		return []lint.Result{lint.Fail("<meta charset> is not the first tag in <head>")}, nil
	}
	return []lint.Result{lint.Pass()}, nil
}
