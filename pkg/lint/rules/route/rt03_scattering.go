package route

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(Scattering)
}

// Scattering forbids other statements between routes of one type.
var Scattering = lint.RuleDef{
	ID:          "RT03",
	Name:        "route.scattering",
	Group:       "grouping",
	Family:      decl.CategoryRoute,
	Description: "Routes of the same type must not be interleaved with other statements.",
	Severity:    lint.SeverityWarning,
	Check:       checkScattering,

	BadExample: `Rails.application.routes.draw do
  resources :users
  mount Sidekiq::Web => "/sidekiq"
  resources :posts
end`,

	GoodExample: `Rails.application.routes.draw do
  resources :posts
  resources :users

  mount Sidekiq::Web => "/sidekiq"
end`,
}

var scatteringReporter = lint.Reporter{
	RuleID:   "RT03",
	Severity: lint.SeverityWarning,
	Format:   "Keep routes of the same type together without other statements between them.",
	Impact:   lint.ImpactHigh,
}

func checkScattering(unit *lint.Unit, _ map[string]any) []lint.Diagnostic {
	return scatteringReporter.Report(checks.Scattering(unit.Declarations(), unit.Statements()))
}
