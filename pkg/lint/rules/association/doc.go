// Package association implements the MA rules: conventions for the
// association declarations (belongs_to, has_one, has_many,
// has_and_belongs_to_many) of model classes.
//
// Import the package for its side effect of registering the rules:
//
//	import _ "github.com/leapstack-labs/declint/pkg/lint/rules/association"
package association
