package checks

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amplint/internal/lint"
)

func runOne(t *testing.T, r lint.Rule, html string) []lint.Result {
	t.Helper()
	c := newContext(t, "https://example.com/a", html, noNetwork(t))
	results, err := r.Check(context.Background(), c)
	require.NoError(t, err)
	return results
}

func TestMetaCharsetIsFirst(t *testing.T) {
	results := runOne(t, MetaCharsetIsFirst{},
		`<html amp><head><meta charset="utf-8"><title>x</title></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusPass, results[0].Status)

	results = runOne(t, MetaCharsetIsFirst{},
		`<html amp><head><title>x</title><meta charset="utf-8"></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusFail, results[0].Status)
	assert.Equal(t, "<meta charset> is not the first tag in <head>", results[0].Message)
}

func TestRuntimeIsPreloaded(t *testing.T) {
	results := runOne(t, RuntimeIsPreloaded{},
		`<html amp><head><link rel="preload" href="https://cdn.ampproject.org/v0.js" as="script"></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusPass, results[0].Status)

	results = runOne(t, RuntimeIsPreloaded{}, `<html amp><head></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusWarn, results[0].Status)
}

func TestMetadataIncludesOGImageSrc(t *testing.T) {
	results := runOne(t, MetadataIncludesOGImageSrc{},
		`<html amp><head><meta property="og:image" content="https://example.com/x.png"></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusPass, results[0].Status)

	results = runOne(t, MetadataIncludesOGImageSrc{}, `<html amp><head></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusWarn, results[0].Status)
}

func TestImagesHaveAltText(t *testing.T) {
	results := runOne(t, ImagesHaveAltText{}, `<html amp><body>
		<amp-img src="a.png" alt="a"></amp-img>
		<amp-img src="b.png"></amp-img>
		<amp-img src="c.png"></amp-img>
	</body></html>`)
	require.Len(t, results, 2)
	assert.Equal(t, lint.StatusWarn, results[0].Status)
	assert.Contains(t, results[0].Message, "b.png")
	assert.Contains(t, results[1].Message, "c.png")

	results = runOne(t, ImagesHaveAltText{},
		`<html amp><body><amp-img src="a.png" alt="a"></amp-img></body></html>`)
	assert.Empty(t, results)
}

func TestAmpImgAmpPixelPreferred(t *testing.T) {
	results := runOne(t, AmpImgAmpPixelPreferred{},
		`<html amp><body><amp-img src="px.gif" width="1" height="1"></amp-img></body></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusWarn, results[0].Status)
	assert.Contains(t, results[0].Message, "amp-pixel")

	results = runOne(t, AmpImgAmpPixelPreferred{},
		`<html amp><body><amp-img src="a.png" width="100" height="50"></amp-img></body></html>`)
	assert.Empty(t, results)
}

func TestViewportDisablesZooming(t *testing.T) {
	results := runOne(t, ViewportDisablesZooming{},
		`<html amp><head><meta name="viewport" content="width=device-width, user-scalable=no"></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusWarn, results[0].Status)

	results = runOne(t, ViewportDisablesZooming{},
		`<html amp><head><meta name="viewport" content="width=device-width"></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusPass, results[0].Status)
}

func TestTitleMeetsLengthCriteria(t *testing.T) {
	results := runOne(t, TitleMeetsLengthCriteria{},
		`<html amp><head><title>Short and sweet</title></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusPass, results[0].Status)

	long := strings.Repeat("x", 120)
	results = runOne(t, TitleMeetsLengthCriteria{},
		`<html amp><head><title>`+long+`</title></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusWarn, results[0].Status)
	assert.Contains(t, results[0].Message, "120")

	results = runOne(t, TitleMeetsLengthCriteria{}, `<html amp><head></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusWarn, results[0].Status)
}

func TestSchemaMetadataIsNews(t *testing.T) {
	results := runOne(t, SchemaMetadataIsNews{}, `<html amp><head>
		<script type="application/ld+json">{"@context":"http://schema.org","@type":"NewsArticle"}</script>
	</head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusPass, results[0].Status)

	results = runOne(t, SchemaMetadataIsNews{}, `<html amp><head>
		<script type="application/ld+json">{"@type":"Recipe"}</script>
	</head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusInfo, results[0].Status)
	assert.Contains(t, results[0].Message, "Recipe")

	results = runOne(t, SchemaMetadataIsNews{}, `<html amp><head></head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusInfo, results[0].Status)

	results = runOne(t, SchemaMetadataIsNews{}, `<html amp><head>
		<script type="application/ld+json">{not json</script>
	</head></html>`)
	require.Len(t, results, 2)
	assert.Equal(t, lint.StatusWarn, results[0].Status)
	assert.Equal(t, lint.StatusInfo, results[1].Status)
}

func TestSchemaMetadataTypeList(t *testing.T) {
	results := runOne(t, SchemaMetadataIsNews{}, `<html amp><head>
		<script type="application/ld+json">{"@type":["Thing","ReportageNewsArticle"]}</script>
	</head></html>`)
	require.Len(t, results, 1)
	assert.Equal(t, lint.StatusPass, results[0].Status)
}
