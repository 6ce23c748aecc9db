package association

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(Scattering)
}

// Scattering forbids other code between associations of one type.
var Scattering = lint.RuleDef{
	ID:          "MA03",
	Name:        "association.scattering",
	Group:       "grouping",
	Family:      decl.CategoryAssociation,
	Description: "Associations must not be interleaved with other code.",
	Severity:    lint.SeverityWarning,
	Check:       checkScattering,

	Rationale: `Validations, callbacks and scopes mixed into the association list hide
relationships in the middle of unrelated code.`,

	BadExample: `class Post < ApplicationRecord
  has_many :comments
  validates :title, presence: true
  has_many :tags
end`,

	GoodExample: `class Post < ApplicationRecord
  has_many :comments
  has_many :tags

  validates :title, presence: true
end`,
}

var scatteringReporter = lint.Reporter{
	RuleID:   "MA03",
	Severity: lint.SeverityWarning,
	Format:   "Group all associations together without non-association code scattered between them.",
	Impact:   lint.ImpactHigh,
}

func checkScattering(unit *lint.Unit, _ map[string]any) []lint.Diagnostic {
	return scatteringReporter.Report(checks.Scattering(unit.Declarations(), unit.Statements()))
}
