// Package hooks implements the HK rules: conventions for before, after and
// around hooks in API request specs.
//
// Import the package for its side effect of registering the rules:
//
//	import _ "github.com/leapstack-labs/declint/pkg/lint/rules/hooks"
package hooks
