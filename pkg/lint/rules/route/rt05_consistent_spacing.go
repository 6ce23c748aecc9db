package route

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(ConsistentSpacing)
}

// ConsistentSpacing forbids blank lines inside a run of one route type.
var ConsistentSpacing = lint.RuleDef{
	ID:          "RT05",
	Name:        "route.consistent_spacing",
	Group:       "spacing",
	Family:      decl.CategoryRoute,
	Description: "Routes of the same type must not be separated by blank lines.",
	Severity:    lint.SeverityInfo,
	Check:       checkConsistentSpacing,

	BadExample: `Rails.application.routes.draw do
  resources :posts

  resources :users
end`,

	GoodExample: `Rails.application.routes.draw do
  resources :posts
  resources :users
end`,
}

var consistentSpacingReporter = lint.Reporter{
	RuleID:   "RT05",
	Severity: lint.SeverityInfo,
	Format:   "Do not leave blank lines between routes of the same type at the same namespace level.",
	Impact:   lint.ImpactLow,
}

func checkConsistentSpacing(unit *lint.Unit, _ map[string]any) []lint.Diagnostic {
	return consistentSpacingReporter.Report(checks.ConsistentSpacing(unit.Declarations(), unit.File))
}
