package checks

import (
	"context"
	"fmt"
	"strings"

	"amplint/internal/lint"
)

// storyRequiredAttrs are the amp-story attributes sharing surfaces need to
// render a story preview.
var storyRequiredAttrs = []string{
	"standalone",
	"title",
	"publisher",
	"publisher-logo-src",
	"poster-portrait-src",
}

// StoryMetadataIsV1 checks the amp-story element carries the full v1
// metadata set.
type StoryMetadataIsV1 struct{}

func (StoryMetadataIsV1) Name() string { return "StoryMetadataIsV1" }

func (StoryMetadataIsV1) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	story := c.Doc.Find("amp-story").First()
	if story.Length() == 0 {
		return []lint.Result{lint.Fail("<amp-story> element not found")}, nil
	}
	var missing []string
	for _, attr := range storyRequiredAttrs {
		if _, ok := story.Attr(attr); !ok {
			missing = append(missing, attr)
		}
	}
	if len(missing) > 0 {
		return []lint.Result{lint.Fail(fmt.Sprintf("<amp-story> is missing: %s", strings.Join(missing, ", ")))}, nil
	}
	return []lint.Result{lint.Pass()}, nil
}
