package core

import "slices"

// LintConfig holds lint rule configuration.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`

	// Rules contains rule-specific options
	Rules map[string]RuleOptions `koanf:"rules"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// IsDisabled reports whether the rule with the given ID is disabled.
func (c *LintConfig) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.Disabled, ruleID)
}

// SeverityFor returns the configured severity override for a rule.
func (c *LintConfig) SeverityFor(ruleID string) (Severity, bool) {
	if c == nil {
		return SeverityWarning, false
	}
	name, ok := c.Severity[ruleID]
	if !ok {
		return SeverityWarning, false
	}
	return ParseSeverity(name)
}

// OptionsFor returns the options configured for a rule, or nil.
func (c *LintConfig) OptionsFor(ruleID string) RuleOptions {
	if c == nil {
		return nil
	}
	return c.Rules[ruleID]
}
