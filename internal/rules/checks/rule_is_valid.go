package checks

import (
	"context"
	"fmt"

	"amplint/internal/amp"
	"amplint/internal/lint"
)

// IsValid delegates structural validation to the external AMP validator
// and reports one failure per finding.
type IsValid struct {
	Validator amp.Validator
}

func (IsValid) Name() string { return "IsValid" }

func (r IsValid) Check(ctx context.Context, c *lint.Context) ([]lint.Result, error) {
	if c.URL == "" {
		return []lint.Result{lint.Warn("document was read from stdin; structural validation skipped")}, nil
	}
	res, err := r.Validator.Validate(ctx, c.URL)
	if err != nil {
		return []lint.Result{lint.Warn(fmt.Sprintf("validator unreachable: %v", err))}, nil
	}
	if res.Valid {
		return []lint.Result{lint.Pass()}, nil
	}
	out := make([]lint.Result, 0, len(res.Errors)+1)
	if len(res.Errors) == 0 {
		out = append(out, lint.Fail("document is not valid AMP"))
	}
	for _, e := range res.Errors {
		out = append(out, lint.Fail(e.String()))
	}
	return out, nil
}
