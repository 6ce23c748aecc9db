// Package lint provides the declaration-convention linting framework.
//
// # Architecture
//
// The lint package is the glue between three layers:
//
//  1. pkg/decl collects declarations from a syntax tree and finds the
//     containers (model classes, route blocks) they live in
//  2. pkg/lint/checks runs the pure convention checks over one container
//  3. Rule packages under pkg/lint/rules bind a check to a declaration
//     family, a rule ID and a message, and register themselves here
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/declint/pkg/lint/rules"
//
// # Rule Categories
//
//   - MA (Model associations): belongs_to, has_one, has_many and
//     has_and_belongs_to_many declarations inside model classes
//   - RT (Routes): route helpers inside a routes draw block or routes file
//
// # Using the Registry
//
//	rules := lint.GetAll()
//	rule, ok := lint.GetByID("MA04")
//	routeRules := lint.GetByFamily(decl.CategoryRoute)
//
// # Configuration
//
// Use Config to control which rules are enabled and their severity:
//
//	config := lint.NewConfig()
//	config.Disable("RT05")
//	config.SetSeverity("MA04", core.SeverityError)
//	config.SetRuleOptions("MA04", map[string]any{"dependency_aware": false})
//
// # Running
//
//	file, err := ruby.NewParser().Parse(ctx, src, "app/models/user.rb")
//	diags := lint.NewAnalyzer(config).AnalyzeFile(file, decl.DefaultConfig())
//
// Diagnostics carry proposed edits as Fixes. The framework never applies them.
package lint
