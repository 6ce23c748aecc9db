package lint

import (
	"strings"

	"github.com/leapstack-labs/declint/pkg/core"
)

// Config controls which rules are enabled, their severity and options.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity

	// RuleOptions holds rule-specific options keyed by rule ID
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// FromLintConfig builds a Config from the file-level lint section.
// Unknown severity names are ignored.
func FromLintConfig(lc *core.LintConfig) *Config {
	c := NewConfig()
	if lc == nil {
		return c
	}
	for _, id := range lc.Disabled {
		c.Disable(strings.TrimSpace(id))
	}
	for id := range lc.Severity {
		if sev, ok := lc.SeverityFor(id); ok {
			c.SetSeverity(id, sev)
		}
	}
	for id, opts := range lc.Rules {
		c.SetRuleOptions(id, opts)
	}
	return c
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options configured for a rule, or nil.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOptions sets the options for a rule.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[ruleID] = opts
	return c
}

// Only disables every registered rule not listed in ids.
func (c *Config) Only(ids ...string) *Config {
	if len(ids) == 0 {
		return c
	}
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[strings.TrimSpace(id)] = true
	}
	for _, rule := range GetAll() {
		if !keep[rule.ID] {
			c.Disable(rule.ID)
		}
	}
	return c
}
