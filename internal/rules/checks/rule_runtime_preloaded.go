package checks

import (
	"context"

	"amplint/internal/lint"
)

const runtimeScriptURL = "https://cdn.ampproject.org/v0.js"

// RuntimeIsPreloaded checks for a preload hint for the AMP runtime, which
// shortens time-to-interactive on origin loads.
type RuntimeIsPreloaded struct{}

func (RuntimeIsPreloaded) Name() string { return "RuntimeIsPreloaded" }

func (RuntimeIsPreloaded) Check(_ context.Context, c *lint.Context) ([]lint.Result, error) {
	sel := c.Doc.Find(`link[rel="preload"][href="` + runtimeScriptURL + `"]`)
	if sel.Length() == 0 {
		return []lint.Result{lint.Warn(runtimeScriptURL + " is not preloaded")}, nil
	}
	return []lint.Result{lint.Pass()}, nil
}
