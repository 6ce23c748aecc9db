// Package rules registers every declint rule.
//
// Rules are organized by declaration family:
//   - association: conventions for model associations (MA01-MA06)
//   - route: conventions for route helpers (RT01-RT07)
//   - hooks: conventions for setup hooks in API request specs (HK01)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/declint/pkg/lint/rules"
package rules
