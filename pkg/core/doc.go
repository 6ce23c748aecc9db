// Package core defines the types shared by the linter and its callers.
//
// This package contains:
//   - Severity levels and rule metadata (RuleInfo)
//   - Lint configuration (LintConfig, RuleOptions)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
