package checks

import (
	"context"
	"fmt"

	"amplint/internal/lint"
)

const storyRuntimeV1 = "https://cdn.ampproject.org/v0/amp-story-1.0.js"

// StoryRuntimeIsV1 verifies the page loads the 1.0 amp-story runtime
// rather than the retired 0.1 version.
type StoryRuntimeIsV1 struct{}

func (StoryRuntimeIsV1) Name() string { return "StoryRuntimeIsV1" }

func (StoryRuntimeIsV1) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	sel := c.Doc.Find(`script[custom-element="amp-story"]`).First()
	if sel.Length() == 0 {
		return []lint.Result{lint.Fail("amp-story runtime script is missing")}, nil
	}
	if src, _ := sel.Attr("src"); src != storyRuntimeV1 {
		return []lint.Result{lint.Fail(fmt.Sprintf("amp-story runtime is %q; use %s", src, storyRuntimeV1))}, nil
	}
	return []lint.Result{lint.Pass()}, nil
}
