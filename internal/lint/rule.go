package lint

import (
	"context"
	"strings"
)

// Rule is a stateless predicate over a Context.
//
// Check returns the ordered results for the assertions the rule made; an
// empty slice means every discovered sub-target passed. Rules are run
// concurrently with every other rule in the set against the same shared
// Context, so they must not mutate it and must not coordinate with each
// other. Domain failures (an unreachable endpoint, malformed metadata) are
// normal outcomes and belong in the returned results as FAIL or WARN; the
// error return is reserved for defects and is converted by the engine into
// an INTERNAL_ERROR result.
type Rule interface {
	Name() string
	Check(ctx context.Context, c *Context) ([]Result, error)
}

// Key normalizes a rule name into its report key.
func Key(name string) string {
	return strings.ToLower(name)
}

// Report maps each scheduled rule's normalized name to its outcome. There
// is exactly one entry per rule that was scheduled, whether it passed,
// failed, or blew up.
type Report map[string][]Result
