package route

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(Separation)
}

// Separation requires a blank line between route types.
var Separation = lint.RuleDef{
	ID:          "RT02",
	Name:        "route.separation",
	Group:       "spacing",
	Family:      decl.CategoryRoute,
	Description: "Different route types must be separated by a blank line.",
	Severity:    lint.SeverityWarning,
	Check:       checkSeparation,
	ConfigKeys:  []string{optMinDeclarations},
	Options:     structureOptions{},
	AutoFixable: true,

	BadExample: `Rails.application.routes.draw do
  root "home#index"
  resources :users
end`,

	GoodExample: `Rails.application.routes.draw do
  root "home#index"

  resources :users
end`,
}

var separationReporter = lint.Reporter{
	RuleID:         "RT02",
	Severity:       lint.SeverityWarning,
	Format:         "Separate different route types with a blank line.",
	FixDescription: "Insert a blank line",
	Impact:         lint.ImpactLow,
}

func checkSeparation(unit *lint.Unit, opts map[string]any) []lint.Diagnostic {
	if !enough(unit, opts) {
		return nil
	}
	return separationReporter.Report(checks.Separation(unit.Declarations(), unit.File))
}
