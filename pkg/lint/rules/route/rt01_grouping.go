package route

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(Grouping)
}

// Grouping requires routes of one type to form a single run per namespace.
var Grouping = lint.RuleDef{
	ID:          "RT01",
	Name:        "route.grouping",
	Group:       "grouping",
	Family:      decl.CategoryRoute,
	Description: "Routes of the same type must be grouped together.",
	Severity:    lint.SeverityWarning,
	Check:       checkGrouping,
	ConfigKeys:  []string{optMinDeclarations},
	Options:     structureOptions{},

	Rationale: `A routes file reads best as three blocks: simple routes, resources, then
namespaces. Interleaving them makes the URL surface of a namespace hard to audit.`,

	BadExample: `Rails.application.routes.draw do
  get "about", to: "pages#about"
  resources :users
  get "contact", to: "pages#contact"
end`,

	GoodExample: `Rails.application.routes.draw do
  get "about", to: "pages#about"
  get "contact", to: "pages#contact"

  resources :users
end`,
}

var groupingReporter = lint.Reporter{
	RuleID:   "RT01",
	Severity: lint.SeverityWarning,
	Format:   "Group routes by type. Keep simple routes, resources, and namespaces grouped together.",
	Impact:   lint.ImpactMedium,
}

func checkGrouping(unit *lint.Unit, opts map[string]any) []lint.Diagnostic {
	if !enough(unit, opts) {
		return nil
	}
	return groupingReporter.Report(checks.Grouping(unit.Declarations()))
}
