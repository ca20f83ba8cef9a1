package checks

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"amplint/internal/lint"
)

// minStoryTextRunes is the amount of visible text below which a story
// reads as a slideshow rather than a story.
const minStoryTextRunes = 100

// StoryIsMostlyText warns when a story carries almost no text.
type StoryIsMostlyText struct{}

func (StoryIsMostlyText) Name() string { return "StoryIsMostlyText" }

func (StoryIsMostlyText) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	text := strings.Join(strings.Fields(c.Doc.Find("amp-story").Text()), " ")
	if n := utf8.RuneCountInString(text); n < minStoryTextRunes {
		return []lint.Result{lint.Warn(fmt.Sprintf("story contains only %d characters of text", n))}, nil
	}
	return []lint.Result{lint.Pass()}, nil
}
