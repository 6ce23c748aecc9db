// Package config provides configuration management for the declint CLI.
//
// The shared lint configuration type lives in pkg/core and is re-exported
// here via a type alias for convenience.
package config

import (
	"github.com/leapstack-labs/declint/pkg/core"
	"github.com/leapstack-labs/declint/pkg/decl"
)

// LintConfig is an alias for the shared lint configuration.
// This allows CLI code to use config.LintConfig without importing pkg/core.
type LintConfig = core.LintConfig

// RuleOptions is an alias for the shared rule options type.
type RuleOptions = core.RuleOptions

// Defaults for the CLI configuration.
const (
	DefaultOutput = "auto"
	DefaultJobs   = 0
)

// DefaultInclude selects the files linted when a directory is given.
var DefaultInclude = []string{"**/*.rb"}

// DefaultExclude skips directories that never hold application code.
var DefaultExclude = []string{"vendor/**", "node_modules/**", "tmp/**"}

// Config holds all CLI configuration options.
type Config struct {
	ProjectRoot  string           `koanf:"-"`
	Verbose      bool             `koanf:"verbose"`
	OutputFormat string           `koanf:"output"`
	Jobs         int              `koanf:"jobs"`
	Include      []string         `koanf:"include"`
	Exclude      []string         `koanf:"exclude"`
	DocsURL      string           `koanf:"docs_url"`
	Lint         *LintConfig      `koanf:"lint"`
	Categories   CategoriesConfig `koanf:"categories"`
}

// CategoriesConfig adjusts the built-in declaration families.
type CategoriesConfig struct {
	Association decl.Overrides `koanf:"association"`
	Route       decl.Overrides `koanf:"route"`
	Hooks       decl.Overrides `koanf:"hooks"`
}

// Families returns the declaration families with the configured overrides
// applied to the defaults.
func (c *Config) Families() *decl.Config {
	fams := decl.DefaultConfig()
	if c == nil {
		return fams
	}
	fams.Association = fams.Association.Apply(c.Categories.Association)
	fams.Route = fams.Route.Apply(c.Categories.Route)
	fams.Hooks = fams.Hooks.Apply(c.Categories.Hooks)
	return fams
}
