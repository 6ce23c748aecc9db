package route

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
	"github.com/leapstack-labs/declint/pkg/syntax"
)

func init() {
	lint.Register(ArrayNotation)
}

// ArrayNotation reports route options given as a one-element array.
var ArrayNotation = lint.RuleDef{
	ID:          "RT07",
	Name:        "route.array_notation",
	Group:       "style",
	Family:      decl.CategoryRoute,
	Description: "Route options with a single value must not use array notation.",
	Severity:    lint.SeverityInfo,
	Check:       checkArrayNotation,
	AutoFixable: true,

	BadExample: `resources :users, only: [:index]`,

	GoodExample: `resources :users, only: :index`,
}

var arrayNotationReporter = lint.Reporter{
	RuleID:         "RT07",
	Severity:       lint.SeverityInfo,
	Format:         "Unnecessary array notation for single element. Use `%s: %s` instead of `%s: [%s]`.",
	FixDescription: "Remove the array brackets",
	Impact:         lint.ImpactLow,
}

func checkArrayNotation(unit *lint.Unit, _ map[string]any) []lint.Diagnostic {
	fam := unit.Family()
	var findings []checks.Finding
	for _, call := range syntax.Calls(unit.Container.Node) {
		if _, ok := fam.Match(call); !ok && !fam.IsScope(call) {
			continue
		}
		findings = append(findings, singleElementArrays(unit.File, call)...)
	}
	return arrayNotationReporter.Report(findings)
}

func singleElementArrays(file *syntax.File, call *syntax.Node) []checks.Finding {
	opts := call.Options()
	if opts == nil {
		return nil
	}
	var findings []checks.Finding
	for _, pair := range opts.Children {
		if pair == nil || pair.Kind != syntax.KindPair || pair.Value == nil || pair.Value.Kind != syntax.KindArray {
			continue
		}
		key, ok := pair.Key.Literal()
		if !ok || len(pair.Value.Children) != 1 {
			continue
		}
		elem := pair.Value.Children[0]
		if _, ok := elem.Literal(); !ok {
			continue
		}
		text := file.Text(elem.Span)
		findings = append(findings, checks.Finding{
			Node: pair.Value,
			Args: []any{key, text, key, text},
			Edit: checks.Replace(pair.Value, text),
		})
	}
	return findings
}
