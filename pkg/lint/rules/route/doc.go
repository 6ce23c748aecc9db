// Package route implements the RT rules: conventions for route helper calls
// inside a routes draw block or a routes file.
//
// Import the package for its side effect of registering the rules:
//
//	import _ "github.com/leapstack-labs/declint/pkg/lint/rules/route"
package route
