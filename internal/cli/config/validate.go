package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leapstack-labs/declint/internal/cli/output"
	"github.com/leapstack-labs/declint/internal/loader"
	"github.com/leapstack-labs/declint/pkg/core"
	"github.com/leapstack-labs/declint/pkg/lint"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		errs = append(errs, fmt.Errorf("output: %w", err))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must not be negative, got %d", c.Jobs))
	}
	for _, p := range append(append([]string{}, c.Include...), c.Exclude...) {
		if err := loader.ValidatePattern(p); err != nil {
			errs = append(errs, fmt.Errorf("pattern %q: %w", p, err))
		}
	}
	if c.Lint != nil {
		for id, name := range c.Lint.Severity {
			if _, ok := core.ParseSeverity(name); !ok {
				errs = append(errs, fmt.Errorf("lint.severity.%s: unknown severity %q (use error, warning, info or hint)", id, name))
			}
		}
		errs = append(errs, validateRuleOptions(c.Lint.Rules)...)
	}
	for _, cat := range []struct {
		name  string
		files []string
	}{
		{"association", c.Categories.Association.Files},
		{"route", c.Categories.Route.Files},
		{"hooks", c.Categories.Hooks.Files},
	} {
		for _, p := range cat.files {
			if err := loader.ValidatePattern(p); err != nil {
				errs = append(errs, fmt.Errorf("categories.%s.files %q: %w", cat.name, p, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// validateRuleOptions checks lint.rules entries against the registered
// rules, in rule ID order.
func validateRuleOptions(rules map[string]core.RuleOptions) []error {
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var errs []error
	for _, id := range ids {
		rule, ok := lint.GetByID(id)
		if !ok {
			errs = append(errs, fmt.Errorf("lint.rules.%s: unknown rule", id))
			continue
		}
		if err := rule.ValidateOptions(rules[id]); err != nil {
			errs = append(errs, fmt.Errorf("lint.rules.%s: %w", id, err))
		}
	}
	return errs
}
