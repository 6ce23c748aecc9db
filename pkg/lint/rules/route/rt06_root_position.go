package route

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(RootPosition)
}

// RootPosition requires root to come before the other simple routes of its
// namespace level.
var RootPosition = lint.RuleDef{
	ID:          "RT06",
	Name:        "route.root_position",
	Group:       "sorting",
	Family:      decl.CategoryRoute,
	Description: "The root route must come first among the routes of its namespace level.",
	Severity:    lint.SeverityWarning,
	Check:       checkRootPosition,
	ConfigKeys:  []string{optMinDeclarations},
	Options:     structureOptions{},

	BadExample: `Rails.application.routes.draw do
  get "about", to: "pages#about"
  root "home#index"
end`,

	GoodExample: `Rails.application.routes.draw do
  root "home#index"
  get "about", to: "pages#about"
end`,
}

var rootPositionReporter = lint.Reporter{
	RuleID:   "RT06",
	Severity: lint.SeverityWarning,
	Format:   "The root route should be positioned at the top of routes within the same namespace level.",
	Impact:   lint.ImpactMedium,
}

func checkRootPosition(unit *lint.Unit, opts map[string]any) []lint.Diagnostic {
	if len(unit.Declarations()) < minDeclarations(opts, 0) {
		return nil
	}
	return rootPositionReporter.Report(rootAfterSimple(unit.Declarations()))
}

// rootAfterSimple reports root routes preceded by another simple route in
// the same context.
func rootAfterSimple(decls []decl.Declaration) []checks.Finding {
	var findings []checks.Finding
	for _, group := range checks.ByContext(decls) {
		if len(group) < 2 {
			continue
		}
		seenSimple := false
		for _, d := range group {
			if d.Kind != decl.RouteSimple {
				continue
			}
			if isRoot(d) {
				if seenSimple {
					findings = append(findings, checks.Finding{Decl: d})
				}
				continue
			}
			seenSimple = true
		}
	}
	return findings
}
