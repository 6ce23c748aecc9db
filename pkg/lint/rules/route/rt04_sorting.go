package route

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(Sorting)
}

// Sorting requires routes of one type to be sorted by name within a
// namespace level.
var Sorting = lint.RuleDef{
	ID:          "RT04",
	Name:        "route.sorting",
	Group:       "sorting",
	Family:      decl.CategoryRoute,
	Description: "Routes of the same type must be sorted alphabetically within a namespace level.",
	Severity:    lint.SeverityWarning,
	Check:       checkSorting,
	ConfigKeys:  []string{optMinDeclarations, optExcludeRoot},
	Options:     sortingOptions{},

	Rationale: `Sorted routes make it obvious whether a path is already defined and keep
merge conflicts local. The root route is exempt; its position is covered by RT06.`,

	BadExample: `Rails.application.routes.draw do
  resources :users
  resources :posts
end`,

	GoodExample: `Rails.application.routes.draw do
  resources :posts
  resources :users
end`,
}

var sortingReporter = lint.Reporter{
	RuleID:   "RT04",
	Severity: lint.SeverityWarning,
	Format:   "Sort routes of the same type alphabetically within the same namespace level. Expected order: %s.",
	Impact:   lint.ImpactMedium,
}

func checkSorting(unit *lint.Unit, opts map[string]any) []lint.Diagnostic {
	o, _ := lint.DecodeOptions(opts, sortingOptions{MinDeclarations: 2, ExcludeRoot: true})
	sortOpts := checks.SortOptions{Unique: true, MinGroup: o.MinDeclarations}
	if o.ExcludeRoot {
		sortOpts.Exclude = isRoot
	}
	return sortingReporter.Report(checks.Sorting(unit.Declarations(), sortOpts))
}

func isRoot(d *decl.Declaration) bool {
	return d.Method == "root"
}
