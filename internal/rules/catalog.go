// Package rules assembles the rule sets the engine runs for each document
// type. The sets are declared statically so the full catalog is enumerable
// without registration side effects.
package rules

import (
	"fmt"
	"slices"

	"amplint/internal/amp"
	"amplint/internal/classify"
	"amplint/internal/lint"
	"amplint/internal/rules/checks"
)

// Catalog maps each document type to its ordered rule set. A specialized
// type's set is the base set, in base order, with specializations appended,
// so the base checks always run for every type.
type Catalog struct {
	sets map[classify.DocumentType][]lint.Rule
}

// NewCatalog builds the catalog. It rejects a set containing two rules
// whose normalized names collide, since the second would silently
// overwrite the first in the report.
func NewCatalog(v amp.Validator) (*Catalog, error) {
	base := []lint.Rule{
		&checks.LinkRelCanonicalIsOk{},
		&checks.MetaCharsetIsFirst{},
		&checks.RuntimeIsPreloaded{},
		&checks.SchemaMetadataIsNews{},
		&checks.MetadataIncludesOGImageSrc{},
		&checks.ImagesHaveAltText{},
		&checks.AmpImgHeightWidthIsOk{},
		&checks.AmpImgAmpPixelPreferred{},
		&checks.AmpVideoIsSmall{},
		&checks.ViewportDisablesZooming{},
		&checks.TitleMeetsLengthCriteria{},
		&checks.IsValid{Validator: v},
	}

	story := append(slices.Clone(base),
		&checks.StoryRuntimeIsV1{},
		&checks.StoryMetadataIsV1{},
		&checks.StoryIsMostlyText{},
		&checks.VideosHaveAltText{},
		&checks.VideosAreSubtitled{},
		&checks.BookendAppearsOnOrigin{},
		&checks.BookendAppearsOnCache{},
		&checks.EndpointsAreAccessibleFromOrigin{},
		&checks.EndpointsAreAccessibleFromCache{},
	)

	sxg := append(slices.Clone(base),
		&checks.SxgVaryOnAcceptAct{},
		&checks.SxgContentNegotiationIsOk{},
		&checks.SxgAmppkgIsForwarded{},
	)

	sets := map[classify.DocumentType][]lint.Rule{
		classify.TypeAMP:      base,
		classify.TypeAMPStory: story,
		classify.TypeSXG:      sxg,
	}
	for t, set := range sets {
		if err := validateNames(set); err != nil {
			return nil, fmt.Errorf("%s rule set: %w", t, err)
		}
	}
	return &Catalog{sets: sets}, nil
}

// RulesFor returns the ordered rule set for a document type. It fails
// closed: an unrecognized type yields an empty set, not an error.
func (c *Catalog) RulesFor(t classify.DocumentType) []lint.Rule {
	return c.sets[t]
}

func validateNames(set []lint.Rule) error {
	seen := make(map[string]struct{}, len(set))
	for _, r := range set {
		key := lint.Key(r.Name())
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate rule name %q", r.Name())
		}
		seen[key] = struct{}{}
	}
	return nil
}
