package amp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"amplint/internal/fetch"
)

// ValidationError is a single finding from the structural validator.
type ValidationError struct {
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Message)
}

// ValidationResult is the validator's verdict on one document.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// Validator checks a published document against the AMP structural
// validator. The validator itself is an external collaborator; this
// interface is the seam tests use to stand in a fake.
type Validator interface {
	Validate(ctx context.Context, docURL string) (ValidationResult, error)
}

// HTTPValidator asks the hosted validator service to validate a document
// by URL. Calls go through the shared fetch client and so count against
// the network gate.
type HTTPValidator struct {
	Client *fetch.Client

	// Endpoint defaults to the public validator service.
	Endpoint string
}

const defaultValidatorEndpoint = "https://validator.amp.dev/validate"

func (v *HTTPValidator) Validate(ctx context.Context, docURL string) (ValidationResult, error) {
	endpoint := v.Endpoint
	if endpoint == "" {
		endpoint = defaultValidatorEndpoint
	}
	resp, err := v.Client.Get(ctx, endpoint+"?url="+url.QueryEscape(docURL), nil)
	if err != nil {
		return ValidationResult{}, err
	}
	if resp.StatusCode != 200 {
		return ValidationResult{}, fmt.Errorf("validator returned status %d", resp.StatusCode)
	}

	var payload struct {
		Status string            `json:"status"`
		Errors []ValidationError `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return ValidationResult{}, fmt.Errorf("decode validator response: %w", err)
	}
	return ValidationResult{
		Valid:  payload.Status == "PASS",
		Errors: payload.Errors,
	}, nil
}
