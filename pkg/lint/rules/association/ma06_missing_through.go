package association

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(MissingThrough)
}

// MissingThrough reports through associations whose target is not declared
// in the same model.
var MissingThrough = lint.RuleDef{
	ID:          "MA06",
	Name:        "association.missing_through",
	Group:       "references",
	Family:      decl.CategoryAssociation,
	Description: "The through target of an association must be declared in the same model.",
	Severity:    lint.SeverityError,
	Check:       checkMissingThrough,

	Rationale: `Rails resolves a has_many :through by name when the association is first used.
A missing target fails at runtime, not at boot.`,

	BadExample: `class Doctor < ApplicationRecord
  has_many :patients, through: :appointments
end`,

	GoodExample: `class Doctor < ApplicationRecord
  has_many :appointments
  has_many :patients, through: :appointments
end`,
}

var missingThroughReporter = lint.Reporter{
	RuleID:   "MA06",
	Severity: lint.SeverityError,
	Format:   "Association %s references through %s, but %s is not defined in this model.",
	Impact:   lint.ImpactCritical,
}

func checkMissingThrough(unit *lint.Unit, _ map[string]any) []lint.Diagnostic {
	return missingThroughReporter.Report(checks.MissingThrough(unit.Declarations()))
}
