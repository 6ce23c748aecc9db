package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a lint diagnostic. Lower values are
// more severe.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a convention violation that fails the run.
	SeverityError Severity = iota
	// SeverityWarning indicates a violation that should be fixed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a style suggestion.
	SeverityHint
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
	SeverityHint:    "hint",
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range severityNames {
		if n == name {
			return Severity(i), true
		}
	}
	return SeverityWarning, false
}

// AtLeast reports whether s is as severe as or more severe than minimum.
func (s Severity) AtLeast(minimum Severity) bool {
	return s <= minimum
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	parsed, ok := ParseSeverity(string(b))
	if !ok {
		return fmt.Errorf("invalid severity %q", string(b))
	}
	*s = parsed
	return nil
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a lint rule for documentation/tooling.
type RuleInfo struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Group           string   `json:"group" yaml:"group"`
	Family          string   `json:"family" yaml:"family"` // "association", "route" or "hooks"
	Description     string   `json:"description" yaml:"description"`
	DefaultSeverity Severity `json:"default_severity" yaml:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	AutoFixable     bool     `json:"auto_fixable,omitempty" yaml:"auto_fixable,omitempty"`

	// Documentation fields
	Rationale   string `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty" yaml:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty" yaml:"fix,omitempty"`
}
