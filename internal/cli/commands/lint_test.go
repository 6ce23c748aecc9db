package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/declint/internal/cli/config"
	"github.com/leapstack-labs/declint/internal/cli/output"
	"github.com/leapstack-labs/declint/internal/cli/testutil"
	basetestutil "github.com/leapstack-labs/declint/internal/testutil"
	"github.com/leapstack-labs/declint/pkg/core"
	"github.com/leapstack-labs/declint/pkg/lint"
)

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist
	flags := []string{"format", "disable", "severity", "rule", "jobs", "watch", "ast"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func lintJSON(t *testing.T, args ...string) (output.LintOutput, error) {
	t.Helper()
	t.Cleanup(config.ResetConfig)

	stdout, _, err := testutil.ExecuteCommand(NewLintCommand(), append(args, "--format", "json")...)
	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &result), stdout)
	return result, err
}

func TestLintCommand_Project(t *testing.T) {
	dir := testutil.SetupRailsProject(t)

	result, err := lintJSON(t, dir)
	require.ErrorIs(t, err, ErrLintIssues)

	assert.Equal(t, 3, result.Summary.FilesAnalyzed, "vendor and non-Ruby files are not scanned")
	assert.Equal(t, 1, result.Summary.FilesWithIssues)
	assert.Equal(t, 2, result.Summary.TotalIssues)
	assert.Equal(t, 2, result.Summary.Warnings)

	require.Len(t, result.Files, 1)
	assert.Equal(t, filepath.Join(dir, "app", "models", "post.rb"), result.Files[0].Path)

	diags := result.Files[0].Diagnostics
	require.Len(t, diags, 2)
	assert.Equal(t, "MA04", diags[0].RuleID)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, "https://leapstack-labs.github.io/declint/rules/ma04", diags[0].DocumentationURL)

	assert.Equal(t, "MA02", diags[1].RuleID)
	assert.Equal(t, 4, diags[1].Line)
	require.Len(t, diags[1].Fixes, 1)
	require.Len(t, diags[1].Fixes[0].Edits, 1)
	assert.Equal(t, "insert_after", diags[1].Fixes[0].Edits[0].Kind)
}

func TestLintCommand_Flags(t *testing.T) {
	dir := testutil.SetupRailsProject(t)

	t.Run("severity threshold", func(t *testing.T) {
		result, err := lintJSON(t, dir, "--severity", "error")
		require.NoError(t, err)
		assert.Zero(t, result.Summary.TotalIssues)
		assert.Empty(t, result.Files)
	})

	t.Run("disable", func(t *testing.T) {
		result, err := lintJSON(t, dir, "--disable", "MA04")
		require.ErrorIs(t, err, ErrLintIssues)
		require.Len(t, result.Files, 1)
		require.Len(t, result.Files[0].Diagnostics, 1)
		assert.Equal(t, "MA02", result.Files[0].Diagnostics[0].RuleID)
	})

	t.Run("only rule", func(t *testing.T) {
		result, err := lintJSON(t, dir, "--rule", "MA04", "--jobs", "1")
		require.ErrorIs(t, err, ErrLintIssues)
		assert.Equal(t, 1, result.Summary.TotalIssues)
	})

	t.Run("single file", func(t *testing.T) {
		result, err := lintJSON(t, filepath.Join(dir, "app", "models", "user.rb"))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Summary.FilesAnalyzed)
	})

	t.Run("invalid severity", func(t *testing.T) {
		t.Cleanup(config.ResetConfig)
		_, _, err := testutil.ExecuteCommand(NewLintCommand(), dir, "--severity", "fatal")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --severity")
	})

	t.Run("missing path", func(t *testing.T) {
		t.Cleanup(config.ResetConfig)
		_, _, err := testutil.ExecuteCommand(NewLintCommand(), filepath.Join(dir, "nope"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLintCommand_SkipsUnparsableFiles(t *testing.T) {
	t.Cleanup(config.ResetConfig)
	dir := testutil.SetupRailsProject(t)
	basetestutil.WriteFiles(t, dir, map[string]string{"app/models/broken.rb": "\xff\xfe"})

	stdout, stderr, err := testutil.ExecuteCommand(NewLintCommand(), dir, "--format", "markdown")
	require.ErrorIs(t, err, ErrLintIssues)

	assert.Contains(t, stderr, "1 files could not be parsed")
	assert.Contains(t, stdout, "MA04")
	assert.Contains(t, stdout, "Summary: 2 issues, 2 warnings in 1 of 3 files")
	assert.Contains(t, stdout, "fix: Insert a blank line")
	testutil.AssertNoANSI(t, stdout)
}

func TestLintCommand_Clean(t *testing.T) {
	t.Cleanup(config.ResetConfig)
	dir := t.TempDir()
	basetestutil.WriteFiles(t, dir, map[string]string{"app/models/user.rb": testutil.CleanModel})

	stdout, _, err := testutil.ExecuteCommand(NewLintCommand(), dir, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No lint issues found in 1 files")
}

func TestLintCommand_ASTRoundTrip(t *testing.T) {
	t.Cleanup(config.ResetConfig)
	dir := testutil.SetupRailsProject(t)
	model := filepath.Join(dir, "app", "models", "post.rb")

	tree, _, err := testutil.ExecuteCommand(NewDumpCommand(), model, "--tree")
	require.NoError(t, err)

	treeDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(treeDir, "post.yaml"), []byte(tree), 0600))

	result, err := lintJSON(t, treeDir, "--ast")
	require.ErrorIs(t, err, ErrLintIssues)
	require.Len(t, result.Files, 1)

	var got []string
	for _, d := range result.Files[0].Diagnostics {
		got = append(got, d.RuleID)
	}
	assert.Equal(t, []string{"MA04", "MA02"}, got)
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		cfg := buildLintConfig(nil, &LintOptions{})

		require.NotNil(t, cfg)
		// No rules should be disabled
		assert.False(t, cfg.IsDisabled("MA01"))
	})

	t.Run("disable rules", func(t *testing.T) {
		cfg := buildLintConfig(nil, &LintOptions{
			Disable: []string{"MA01", " RT05"},
		})

		assert.True(t, cfg.IsDisabled("MA01"))
		assert.True(t, cfg.IsDisabled("RT05"))
		assert.False(t, cfg.IsDisabled("MA02"))
	})

	t.Run("enable only specific rules", func(t *testing.T) {
		cfg := buildLintConfig(nil, &LintOptions{
			Rules: []string{"MA01", "RT04"},
		})

		for _, r := range lint.GetAll() {
			want := r.ID != "MA01" && r.ID != "RT04"
			assert.Equal(t, want, cfg.IsDisabled(r.ID), "rule %q", r.ID)
		}
	})

	t.Run("project config", func(t *testing.T) {
		projectCfg := &config.Config{
			Lint: &config.LintConfig{
				Disabled: []string{"MA01"},
				Severity: map[string]string{"MA04": "error"},
				Rules: map[string]config.RuleOptions{
					"MA04": {"dependency_aware": false},
				},
			},
		}
		cfg := buildLintConfig(projectCfg, &LintOptions{Disable: []string{"MA02"}})

		assert.True(t, cfg.IsDisabled("MA01"))
		assert.True(t, cfg.IsDisabled("MA02"))
		assert.Equal(t, core.SeverityError, cfg.GetSeverity("MA04", core.SeverityWarning))
		assert.Equal(t, false, cfg.GetRuleOptions("MA04")["dependency_aware"])
	})
}

func TestFilterBySeverity(t *testing.T) {
	results := []lintFileResult{
		{
			Path: "app/models/post.rb",
			Diagnostics: []lint.Diagnostic{
				{RuleID: "MA06", Severity: core.SeverityError, Message: "error"},
				{RuleID: "MA04", Severity: core.SeverityWarning, Message: "warning"},
				{RuleID: "MA05", Severity: core.SeverityInfo, Message: "info"},
			},
		},
	}

	tests := []struct {
		threshold core.Severity
		want      int
	}{
		{core.SeverityError, 1},
		{core.SeverityWarning, 2},
		{core.SeverityHint, 3},
	}
	for _, tt := range tests {
		t.Run(tt.threshold.String(), func(t *testing.T) {
			filtered := filterBySeverity(results, tt.threshold)
			require.Len(t, filtered, 1)
			assert.Len(t, filtered[0].Diagnostics, tt.want)
		})
	}

	t.Run("empty results when all below threshold", func(t *testing.T) {
		infoOnly := []lintFileResult{{
			Path:        "config/routes.rb",
			Diagnostics: []lint.Diagnostic{{RuleID: "RT05", Severity: core.SeverityInfo}},
		}}
		assert.Empty(t, filterBySeverity(infoOnly, core.SeverityError))
	})
}

func TestRenderLintResults_Text(t *testing.T) {
	tr := testutil.NewTestRendererText()
	run := lintRun{
		Analyzed: 2,
		Results: []lintFileResult{{
			Path: "app/models/post.rb",
			Diagnostics: []lint.Diagnostic{
				{RuleID: "MA03", Severity: core.SeverityWarning, Message: "scattered",
					RelatedInfo: []lint.RelatedInfo{{Message: "previous has_many here"}}},
				{RuleID: "MA06", Severity: core.SeverityError, Message: "missing"},
			},
		}},
	}

	assert.True(t, renderLintResults(tr.Renderer, run))
	out := tr.Output()
	assert.Contains(t, out, "app/models/post.rb")
	assert.Contains(t, out, "note: previous has_many here")
	assert.Contains(t, out, "Summary: 2 issues, 1 errors, 1 warnings in 1 of 2 files")
}

func TestJobsFor(t *testing.T) {
	assert.Equal(t, 3, jobsFor(&config.Config{Jobs: 5}, &LintOptions{Jobs: 3}))
	assert.Equal(t, 5, jobsFor(&config.Config{Jobs: 5}, &LintOptions{}))
	assert.Positive(t, jobsFor(nil, &LintOptions{}))
}

func TestWatchAndLint(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relinted := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- watchAndLint(ctx, []string{dir}, slog.New(slog.DiscardHandler), func() {
			relinted <- struct{}{}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.rb"), []byte(testutil.CleanModel), 0600))

	select {
	case <-relinted:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a re-lint after writing a Ruby file")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
