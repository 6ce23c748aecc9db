package association

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(Sorting)
}

// Sorting requires associations of one type to be sorted by name, with
// through associations after the association they go through.
var Sorting = lint.RuleDef{
	ID:          "MA04",
	Name:        "association.sorting",
	Group:       "sorting",
	Family:      decl.CategoryAssociation,
	Description: "Associations of the same type must be sorted alphabetically, through targets first.",
	Severity:    lint.SeverityWarning,
	Check:       checkSorting,
	ConfigKeys:  []string{optMinDeclarations, optDependencyAware},
	Options:     sortingOptions{},

	Rationale: `Sorted associations are easy to scan and produce smaller diffs. A has_many
:through must come after the association it goes through, so ordering is alphabetical
only among associations whose dependencies are already declared.`,

	BadExample: `class Doctor < ApplicationRecord
  has_many :patients, through: :appointments
  has_many :appointments
end`,

	GoodExample: `class Doctor < ApplicationRecord
  has_many :appointments
  has_many :patients, through: :appointments
end`,

	Fix: "Reorder the associations to match the expected order in the message.",
}

var sortingReporter = lint.Reporter{
	RuleID:   "MA04",
	Severity: lint.SeverityWarning,
	Format:   "Sort associations of the same type alphabetically. Expected order: %s.",
	Impact:   lint.ImpactMedium,
}

func checkSorting(unit *lint.Unit, opts map[string]any) []lint.Diagnostic {
	o, _ := lint.DecodeOptions(opts, sortingOptions{
		MinDeclarations: 2,
		DependencyAware: unit.Family().DependencyAware,
	})
	findings := checks.Sorting(unit.Declarations(), checks.SortOptions{
		DependencyAware: o.DependencyAware,
		MinGroup:        o.MinDeclarations,
	})
	return sortingReporter.Report(findings)
}
