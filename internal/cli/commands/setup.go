// Package commands implements the declint subcommands.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/declint/internal/cli/config"
	"github.com/leapstack-labs/declint/internal/cli/output"
	"github.com/leapstack-labs/declint/internal/loader"
	"github.com/leapstack-labs/declint/pkg/lint"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a renderer for the
// configured output mode. A non-empty format overrides the configured mode.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	if cfg.DocsURL != "" {
		lint.SetDocsBaseURL(cfg.DocsURL)
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Scanner returns a file scanner for the configured include and exclude
// patterns.
func (c *CommandContext) Scanner() *loader.Scanner {
	return loader.NewScanner(c.Cfg.Include, c.Cfg.Exclude)
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise the defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		OutputFormat: config.DefaultOutput,
		Jobs:         config.DefaultJobs,
		Include:      config.DefaultInclude,
		Exclude:      config.DefaultExclude,
	}
}
