// Package config holds the flag-backed runtime configuration.
package config

import (
	"fmt"
	"slices"
	"time"

	"amplint/internal/fetch"
	"amplint/internal/lint"
	"amplint/internal/netgate"
	"amplint/internal/output"
)

// forceValues are the accepted --force document type overrides.
var forceValues = []string{"auto", "amp", "ampstory", "sxg"}

type Config struct {
	// Format selects the report output format.
	Format string

	// Force overrides document classification; "auto" classifies.
	Force string

	// UserAgent is an alias into the fetch user agent table.
	UserAgent string

	// Headers are raw "Name: value" request headers from repeated -H flags.
	Headers []string

	// Permits bounds concurrent outbound network calls.
	Permits int

	// RuleTimeout bounds each individual rule's run.
	RuleTimeout time.Duration

	Verbose bool
}

func New() *Config {
	return &Config{
		Format:      "text",
		Force:       "auto",
		UserAgent:   fetch.DefaultUserAgentAlias,
		Permits:     netgate.DefaultPermits,
		RuleTimeout: lint.DefaultRuleTimeout,
	}
}

func (c *Config) Validate() error {
	if !slices.Contains(output.Formats, c.Format) {
		return fmt.Errorf("unknown format %q (choose one of %v)", c.Format, output.Formats)
	}
	if !slices.Contains(forceValues, c.Force) {
		return fmt.Errorf("unknown document type %q (choose one of %v)", c.Force, forceValues)
	}
	if _, err := fetch.UserAgent(c.UserAgent); err != nil {
		return err
	}
	if c.Permits < 1 {
		return fmt.Errorf("permits must be >= 1, got %d", c.Permits)
	}
	if c.RuleTimeout <= 0 {
		return fmt.Errorf("rule timeout must be positive, got %v", c.RuleTimeout)
	}
	if _, err := c.HeaderMap(); err != nil {
		return err
	}
	return nil
}

// HeaderMap resolves the request headers for the document fetch and every
// rule probe: the user agent alias plus any -H flags, later flags winning.
func (c *Config) HeaderMap() (map[string]string, error) {
	headers := make(map[string]string, len(c.Headers)+1)
	ua, err := fetch.UserAgent(c.UserAgent)
	if err != nil {
		return nil, err
	}
	headers["User-Agent"] = ua
	for _, h := range c.Headers {
		name, value, err := fetch.SplitHeader(h)
		if err != nil {
			return nil, err
		}
		headers[name] = value
	}
	return headers, nil
}
