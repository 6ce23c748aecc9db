package association

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(Grouping)
}

// Grouping requires associations of one type to form a single run.
var Grouping = lint.RuleDef{
	ID:          "MA01",
	Name:        "association.grouping",
	Group:       "grouping",
	Family:      decl.CategoryAssociation,
	Description: "Associations of the same type must be grouped together.",
	Severity:    lint.SeverityWarning,
	Check:       checkGrouping,
	ConfigKeys:  []string{optMinDeclarations},
	Options:     structureOptions{},

	Rationale: `A model's associations are read as a table of contents for its relationships.
When has_many declarations are split by a belongs_to, readers have to scan the whole
class body to learn what the model owns.`,

	BadExample: `class Post < ApplicationRecord
  has_many :comments
  belongs_to :author
  has_many :tags
end`,

	GoodExample: `class Post < ApplicationRecord
  belongs_to :author

  has_many :comments
  has_many :tags
end`,

	Fix: "Move the reported association next to the other associations of its type.",
}

var groupingReporter = lint.Reporter{
	RuleID:   "MA01",
	Severity: lint.SeverityWarning,
	Format:   "Group associations of the same type together.",
	Impact:   lint.ImpactMedium,
}

func checkGrouping(unit *lint.Unit, opts map[string]any) []lint.Diagnostic {
	if !enough(unit, opts) {
		return nil
	}
	return groupingReporter.Report(checks.Grouping(unit.Declarations()))
}
