package lint

import (
	"github.com/leapstack-labs/declint/pkg/core"
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
	"github.com/leapstack-labs/declint/pkg/syntax"
	"github.com/leapstack-labs/declint/pkg/token"
)

// Severity is the diagnostic severity, re-exported so rule packages need
// not import core.
type Severity = core.Severity

// Severity levels.
const (
	SeverityError   = core.SeverityError
	SeverityWarning = core.SeverityWarning
	SeverityInfo    = core.SeverityInfo
	SeverityHint    = core.SeverityHint
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function parameters.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "MA01"
	Name        string        // Human-readable name, e.g., "association.grouping"
	Group       string        // Category, e.g., "grouping", "sorting", "style"
	Family      string        // Declaration family the rule runs on: "association" or "route"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Check       CheckFunc     // The check function
	ConfigKeys  []string      // Configuration keys this rule accepts (for rule-specific options)
	Options     any           // Zero value of the options struct the keys decode into, if any
	AutoFixable bool          // true if the rule proposes edits

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc analyzes one container and returns diagnostics.
// The opts parameter contains rule-specific options from configuration.
type CheckFunc func(unit *Unit, opts map[string]any) []Diagnostic

// Info returns the rule's metadata for documentation/tooling.
func (r RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Family:          r.Family,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		ConfigKeys:      r.ConfigKeys,
		AutoFixable:     r.AutoFixable,
		Rationale:       r.Rationale,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
		Fix:             r.Fix,
	}
}

// =============================================================================
// Analysis Unit
// =============================================================================

// Unit is what a rule inspects: one container of a parsed file.
type Unit struct {
	File      *syntax.File
	Container decl.Container
}

// Declarations returns the declarations collected from the container.
func (u *Unit) Declarations() []decl.Declaration {
	return u.Container.Result.Declarations
}

// Statements returns the non-declaration statements of the container.
func (u *Unit) Statements() []decl.Statement {
	return u.Container.Result.Statements
}

// Family returns the family the container belongs to.
func (u *Unit) Family() *decl.Family {
	return u.Container.Family
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string         `json:"rule_id"`
	Severity core.Severity  `json:"severity"`
	Message  string         `json:"message"`
	Node     *syntax.Node   `json:"-"`
	Pos      token.Position `json:"pos"`
	EndPos   token.Position `json:"end_pos"`         // Optional: end of the problematic range
	Fixes    []Fix          `json:"fixes,omitempty"` // Optional: proposed edits, never applied here

	// Remediation metadata
	DocumentationURL string        `json:"documentation_url,omitempty"`
	ImpactScore      int           `json:"impact_score,omitempty"` // 0-100
	AutoFixable      bool          `json:"auto_fixable,omitempty"` // true if Fixes can be auto-applied
	RelatedInfo      []RelatedInfo `json:"related_info,omitempty"` // Additional locations/context
}

// RelatedInfo provides additional context for a diagnostic.
type RelatedInfo struct {
	FilePath string         `json:"file_path,omitempty"`
	Pos      token.Position `json:"pos"`
	Message  string         `json:"message"`
}

// Fix represents a suggested code fix.
type Fix struct {
	Description string `json:"description"`
	Edits       []Edit `json:"edits"`
}

// Edit is a proposed text change anchored on a syntax node.
type Edit = checks.Edit
