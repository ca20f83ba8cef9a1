package checks

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"amplint/internal/lint"
)

// maxTitleRunes is the length beyond which titles are truncated in
// discovery surfaces.
const maxTitleRunes = 90

// TitleMeetsLengthCriteria warns about missing or overlong titles.
type TitleMeetsLengthCriteria struct{}

func (TitleMeetsLengthCriteria) Name() string { return "TitleMeetsLengthCriteria" }

func (TitleMeetsLengthCriteria) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	title := strings.TrimSpace(c.Doc.Find("title").First().Text())
	if title == "" {
		return []lint.Result{lint.Warn("<title> is missing")}, nil
	}
	if n := utf8.RuneCountInString(title); n > maxTitleRunes {
		return []lint.Result{lint.Warn(fmt.Sprintf("<title> is %d characters; keep it at most %d", n, maxTitleRunes))}, nil
	}
	return []lint.Result{lint.Pass()}, nil
}
