package hooks

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

func init() {
	lint.Register(ScatteredSetup)
}

// ScatteredSetup forbids a second hook of the same type in one example
// group.
var ScatteredSetup = lint.RuleDef{
	ID:          "HK01",
	Name:        "hooks.scattered_setup",
	Group:       "grouping",
	Family:      decl.CategoryHooks,
	Description: "An example group must not define more than one hook of the same type.",
	Severity:    lint.SeverityWarning,
	Check:       checkScatteredSetup,

	Rationale: `RSpec runs every hook of a group, in definition order. Setup split over two
before blocks reads as if only one of them applied to the examples in between.`,

	BadExample: `path "/api/users" do
  before { sign_in(admin) }

  get "lists users" do
    # ...
  end

  before { create_list(:user, 3) }
end`,

	GoodExample: `path "/api/users" do
  before do
    sign_in(admin)
    create_list(:user, 3)
  end

  get "lists users" do
    # ...
  end
end`,

	Fix: "Merge the hook into the first hook of its type in the same group.",
}

var scatteredSetupReporter = lint.Reporter{
	RuleID:   "HK01",
	Severity: lint.SeverityWarning,
	Format:   "Do not define multiple %s hooks in the same example group (first one on line %d).",
	Impact:   lint.ImpactHigh,
}

func checkScatteredSetup(unit *lint.Unit, _ map[string]any) []lint.Diagnostic {
	return scatteredSetupReporter.Report(checks.Repeated(unit.Declarations(), true))
}
