package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"amplint/internal/lint"
)

var newsArticleTypes = map[string]bool{
	"Article":               true,
	"NewsArticle":           true,
	"AnalysisNewsArticle":   true,
	"AskPublicNewsArticle":  true,
	"BackgroundNewsArticle": true,
	"OpinionNewsArticle":    true,
	"ReportageNewsArticle":  true,
	"ReviewNewsArticle":     true,
	"BlogPosting":           true,
}

// SchemaMetadataIsNews inspects the document's ld+json metadata for a
// news-family @type. Platforms surface AMP pages in news carousels only
// when such metadata is present.
type SchemaMetadataIsNews struct{}

func (SchemaMetadataIsNews) Name() string { return "SchemaMetadataIsNews" }

func (SchemaMetadataIsNews) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	var (
		out       []lint.Result
		sawAny    bool
		sawNews   bool
		firstType string
	)
	c.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		types, err := ldJSONTypes(s.Text())
		if err != nil {
			out = append(out, lint.Warn(fmt.Sprintf("invalid ld+json metadata: %v", err)))
			return
		}
		for _, t := range types {
			sawAny = true
			if firstType == "" {
				firstType = t
			}
			if newsArticleTypes[t] {
				sawNews = true
			}
		}
	})

	switch {
	case sawNews:
		out = append(out, lint.Pass())
	case sawAny:
		out = append(out, lint.Info(fmt.Sprintf("schema.org type %q is not a news article type", firstType)))
	default:
		out = append(out, lint.Info("no schema.org metadata found"))
	}
	return out, nil
}

// ldJSONTypes extracts the @type value(s) from one ld+json block. @type
// may be a string or a list of strings.
func ldJSONTypes(raw string) ([]string, error) {
	var payload struct {
		Type any `json:"@type"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return nil, err
	}
	switch t := payload.Type.(type) {
	case string:
		return []string{t}, nil
	case []any:
		var types []string
		for _, v := range t {
			if s, ok := v.(string); ok {
				types = append(types, s)
			}
		}
		return types, nil
	default:
		return nil, nil
	}
}
