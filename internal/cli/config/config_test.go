package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/declint/pkg/core"
	_ "github.com/leapstack-labs/declint/pkg/lint/rules" // register rules for option validation
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "declint.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(ResetConfig)
	tmpDir := t.TempDir()

	cfg, err := LoadConfigFrom(tmpDir, "", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, 0, cfg.Jobs)
	assert.Equal(t, DefaultInclude, cfg.Include)
	assert.Equal(t, DefaultExclude, cfg.Exclude)
	assert.Equal(t, tmpDir, cfg.ProjectRoot)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	t.Cleanup(ResetConfig)
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
output: json
jobs: 4
exclude: ["db/**"]
lint:
  disabled: [RT05]
  severity:
    MA04: error
  rules:
    MA04:
      dependency_aware: false
categories:
  association:
    base_classes: [Base]
  route:
    files: ["config/routes.rb"]
  hooks:
    files: ["spec/{requests,integration}/api/**/*.rb"]
`)
	nested := filepath.Join(tmpDir, "app", "models")
	require.NoError(t, os.MkdirAll(nested, 0750))

	cfg, err := LoadConfigFrom(nested, "", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "declint.yaml"), GetConfigFileUsed())
	assert.Equal(t, tmpDir, cfg.ProjectRoot)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, []string{"db/**"}, cfg.Exclude)

	require.NotNil(t, cfg.Lint)
	assert.True(t, cfg.Lint.IsDisabled("RT05"))
	sev, ok := cfg.Lint.SeverityFor("MA04")
	require.True(t, ok)
	assert.Equal(t, core.SeverityError, sev)
	assert.Equal(t, false, cfg.Lint.OptionsFor("MA04")["dependency_aware"])

	fams := cfg.Families()
	assert.Equal(t, []string{"Base"}, fams.Association.BaseClasses)
	assert.Equal(t, []string{"config/routes.rb"}, fams.Route.Files)
	assert.Contains(t, fams.Association.Kinds, "has_many")
	assert.True(t, fams.Hooks.MatchesFile("spec/integration/api/users_spec.rb"))
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Cleanup(ResetConfig)
	tmpDir := t.TempDir()
	cfgFile := writeConfig(t, tmpDir, "output: markdown\njobs: 2\ndocs_url: https://file.example\n")

	t.Setenv("DECLINT_JOBS", "3")
	t.Setenv("DECLINT_DOCS_URL", "https://env.example")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("output", "auto", "")
	flags.Int("jobs", 0, "")
	flags.String("docs-url", "", "")
	require.NoError(t, flags.Parse([]string{"--config", cfgFile, "--docs-url", "https://flag.example"}))

	cfg, err := LoadConfigFrom(t.TempDir(), cfgFile, flags)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.OutputFormat, "unchanged flag must not override the file")
	assert.Equal(t, 3, cfg.Jobs, "env overrides the file")
	assert.Equal(t, "https://flag.example", cfg.DocsURL, "flag overrides env")
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Cleanup(ResetConfig)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfigFrom(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "output: [\n")
		_, err := LoadConfigFrom(dir, "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "output: html\njobs: -1\nlint:\n  severity:\n    MA01: fatal\n")
		_, err := LoadConfigFrom(dir, "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid output mode")
		assert.Contains(t, err.Error(), "jobs must not be negative")
		assert.Contains(t, err.Error(), `unknown severity "fatal"`)
	})

	t.Run("invalid rule options", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, `
lint:
  rules:
    MA04:
      min_declarations: 5
      dependency_awre: true
    RT04:
      min_declarations: many
    MA06:
      min_declarations: 2
    XX99:
      min_declarations: 2
`)
		_, err := LoadConfigFrom(dir, "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `lint.rules.MA04: unknown option "dependency_awre"`)
		assert.Contains(t, err.Error(), "lint.rules.RT04: decode rule options")
		assert.Contains(t, err.Error(), "lint.rules.MA06: unknown option \"min_declarations\" (the rule takes no options)")
		assert.Contains(t, err.Error(), "lint.rules.XX99: unknown rule")
	})
}

func TestValidate_Patterns(t *testing.T) {
	cfg := &Config{OutputFormat: "auto", Include: []string{"app/[a-"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app/[a-")

	cfg = &Config{Categories: CategoriesConfig{}}
	cfg.Categories.Route.Files = []string{"["}
	require.Error(t, cfg.Validate())

	cfg = &Config{Categories: CategoriesConfig{}}
	cfg.Categories.Hooks.Files = []string{"spec/{requests"}
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categories.hooks.files")
}

func TestFamilies_NilConfig(t *testing.T) {
	var cfg *Config
	fams := cfg.Families()
	require.NotNil(t, fams.Association)
	require.NotNil(t, fams.Route)
	require.NotNil(t, fams.Hooks)
}

func TestGetLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
	assert.NotNil(t, GetLogger(context.Background()))
}
