package association

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(ConsistentSpacing)
}

// ConsistentSpacing forbids blank lines inside a run of one association type.
var ConsistentSpacing = lint.RuleDef{
	ID:          "MA05",
	Name:        "association.consistent_spacing",
	Group:       "spacing",
	Family:      decl.CategoryAssociation,
	Description: "Associations of the same type must not be separated by blank lines.",
	Severity:    lint.SeverityInfo,
	Check:       checkConsistentSpacing,

	BadExample: `class Post < ApplicationRecord
  has_many :comments

  has_many :tags
end`,

	GoodExample: `class Post < ApplicationRecord
  has_many :comments
  has_many :tags
end`,
}

var consistentSpacingReporter = lint.Reporter{
	RuleID:   "MA05",
	Severity: lint.SeverityInfo,
	Format:   "Do not leave blank lines between associations of the same type.",
	Impact:   lint.ImpactLow,
}

func checkConsistentSpacing(unit *lint.Unit, _ map[string]any) []lint.Diagnostic {
	return consistentSpacingReporter.Report(checks.ConsistentSpacing(unit.Declarations(), unit.File))
}
