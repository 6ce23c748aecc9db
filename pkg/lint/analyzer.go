package lint

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/syntax"
)

// Analyzer runs registered lint rules against parsed files.
type Analyzer struct {
	config *Config
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// AnalyzeFile finds the declaration containers of file and runs every
// enabled rule of each container's family over it. A nil families config
// means decl.DefaultConfig. Diagnostics silenced by a nolint comment are
// dropped; the rest are ordered by position, then rule ID.
func (a *Analyzer) AnalyzeFile(file *syntax.File, families *decl.Config) []Diagnostic {
	if file == nil || file.Root == nil {
		return nil
	}
	if families == nil {
		families = decl.DefaultConfig()
	}

	var diagnostics []Diagnostic
	for _, c := range decl.Containers(file, families) {
		unit := &Unit{File: file, Container: c}
		diagnostics = append(diagnostics, a.analyzeUnit(unit)...)
	}

	diagnostics = suppress(file, diagnostics)
	SortDiagnostics(diagnostics)
	return diagnostics
}

func (a *Analyzer) analyzeUnit(unit *Unit) []Diagnostic {
	var diagnostics []Diagnostic
	for _, rule := range GetByFamily(unit.Family().Category) {
		if a.config.IsDisabled(rule.ID) || rule.Check == nil {
			continue
		}

		diags := rule.Check(unit, a.config.GetRuleOptions(rule.ID))

		for i := range diags {
			diags[i].Severity = a.config.GetSeverity(rule.ID, diags[i].Severity)
			if diags[i].DocumentationURL == "" {
				diags[i].DocumentationURL = BuildDocURL(rule.ID)
			}
		}
		diagnostics = append(diagnostics, diags...)
	}
	return diagnostics
}

// suppress drops diagnostics silenced by a nolint comment on their first
// line, or on a comment-only line directly above it.
func suppress(file *syntax.File, diags []Diagnostic) []Diagnostic {
	directives := file.Suppressions()
	if len(directives) == 0 {
		return diags
	}
	return slices.DeleteFunc(diags, func(d Diagnostic) bool {
		line := d.Pos.Line
		if silenced(directives, line, d.RuleID) {
			return true
		}
		above := strings.TrimSpace(file.Line(line - 1))
		return strings.HasPrefix(above, "#") && silenced(directives, line-1, d.RuleID)
	})
}

func silenced(directives map[int][]string, line int, ruleID string) bool {
	ids, ok := directives[line]
	if !ok {
		return false
	}
	return ids == nil || slices.Contains(ids, ruleID)
}

// SortDiagnostics orders diagnostics by position, then rule ID.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		switch {
		case a.Pos.Before(b.Pos):
			return -1
		case b.Pos.Before(a.Pos):
			return 1
		default:
			return strings.Compare(a.RuleID, b.RuleID)
		}
	})
}
