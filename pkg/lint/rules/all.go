package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	_ "github.com/leapstack-labs/declint/pkg/lint/rules/association"
	_ "github.com/leapstack-labs/declint/pkg/lint/rules/hooks"
	_ "github.com/leapstack-labs/declint/pkg/lint/rules/route"
)
