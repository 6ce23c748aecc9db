package association

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(Separation)
}

// Separation requires a blank line between association types.
var Separation = lint.RuleDef{
	ID:          "MA02",
	Name:        "association.separation",
	Group:       "spacing",
	Family:      decl.CategoryAssociation,
	Description: "Different association types must be separated by a blank line.",
	Severity:    lint.SeverityWarning,
	Check:       checkSeparation,
	ConfigKeys:  []string{optMinDeclarations},
	Options:     structureOptions{},
	AutoFixable: true,

	Rationale: `A blank line between belongs_to and has_many blocks makes each group visible
at a glance.`,

	BadExample: `class Post < ApplicationRecord
  belongs_to :author
  has_many :comments
end`,

	GoodExample: `class Post < ApplicationRecord
  belongs_to :author

  has_many :comments
end`,
}

var separationReporter = lint.Reporter{
	RuleID:         "MA02",
	Severity:       lint.SeverityWarning,
	Format:         "Separate different association types with a blank line.",
	FixDescription: "Insert a blank line",
	Impact:         lint.ImpactLow,
}

func checkSeparation(unit *lint.Unit, opts map[string]any) []lint.Diagnostic {
	if !enough(unit, opts) {
		return nil
	}
	return separationReporter.Report(checks.Separation(unit.Declarations(), unit.File))
}
