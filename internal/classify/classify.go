// Package classify assigns a fetched document the type tag that selects
// which rule set applies to it.
package classify

import "github.com/PuerkitoBio/goquery"

// DocumentType selects a rule set.
type DocumentType string

const (
	// TypeAMP is the general AMP document; every document classifies to at
	// least this.
	TypeAMP DocumentType = "amp"

	// TypeAMPStory is a document whose body is an amp-story.
	TypeAMPStory DocumentType = "ampstory"

	// TypeSXG is an AMP document served as a signed exchange. Signing is a
	// transport property, not a markup property, so this type is only ever
	// selected by an explicit override, never by Classify.
	TypeSXG DocumentType = "sxg"
)

// Classify inspects the parsed document and returns its type. It is a pure
// function of the document, total, and never errors: a malformed or nil
// document degrades to TypeAMP.
func Classify(doc *goquery.Document) DocumentType {
	if doc == nil {
		return TypeAMP
	}
	if doc.Find("amp-story").Length() > 0 {
		return TypeAMPStory
	}
	return TypeAMP
}

// Parse maps a --force flag value to a DocumentType. "auto" and "" report
// ok=false, meaning classification should be used instead.
func Parse(s string) (t DocumentType, ok bool) {
	switch s {
	case string(TypeAMP):
		return TypeAMP, true
	case string(TypeAMPStory):
		return TypeAMPStory, true
	case string(TypeSXG):
		return TypeSXG, true
	default:
		return "", false
	}
}
