package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/declint/internal/cli/config"
	"github.com/leapstack-labs/declint/internal/cli/output"
	"github.com/leapstack-labs/declint/internal/loader"
	"github.com/leapstack-labs/declint/pkg/core"
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	_ "github.com/leapstack-labs/declint/pkg/lint/rules" // register every rule family
)

// ErrLintIssues is returned when diagnostics remain after filtering, so the
// process exits with status 1.
var ErrLintIssues = errors.New("lint issues found")

// treeInclude selects syntax tree documents when --ast is set.
var treeInclude = []string{"**/*.yaml", "**/*.yml", "**/*.json"}

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths    []string // Files or directories
	Format   string   // Output format: text, markdown, json
	Disable  []string // Rule IDs to disable
	Severity string   // Minimum severity: error, warning, info, hint
	Rules    []string // Run only specific rules
	Jobs     int      // Parallel workers, 0 for GOMAXPROCS
	Watch    bool     // Re-lint on file changes
	AST      bool     // Inputs are syntax tree documents
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check declaration order in models and routes",
		Long: `Analyze Ruby files for declaration convention violations.

Association declarations in model classes (has_many, belongs_to, ...) and
route declarations in routes files (get, resources, namespace, ...) are
checked for grouping, separation, scattering, sorting and spacing.
Rules can be configured in declint.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  declint lint

  # Lint specific paths
  declint lint app/models config/routes.rb

  # Output as JSON
  declint lint --format json

  # Disable specific rules
  declint lint --disable MA05,RT05

  # Only report errors
  declint lint --severity error

  # Lint syntax trees produced by another parser
  declint lint --ast trees/

  # Re-lint whenever a file changes
  declint lint --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "info", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Files linted in parallel (default: number of CPUs, or the configured jobs)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch paths and re-lint on changes")
	cmd.Flags().BoolVar(&opts.AST, "ast", false, "Treat inputs as YAML/JSON syntax tree documents")

	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "hint"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid --severity %q (use error, warning, info or hint)", opts.Severity)
	}

	include := cfg.Include
	if opts.AST {
		include = treeInclude
	}
	linter := &fileLinter{
		analyzer: lint.NewAnalyzer(buildLintConfig(cfg, opts)),
		families: cfg.Families(),
		loader:   loader.New(cmdCtx.Logger, loader.WithTrees(opts.AST)),
		scanner:  loader.NewScanner(include, cfg.Exclude),
		logger:   cmdCtx.Logger,
		jobs:     jobsFor(cfg, opts),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report := func(ctx context.Context) (bool, error) {
		run, err := linter.lintPaths(ctx, opts.Paths)
		if err != nil {
			return false, err
		}
		run.Results = filterBySeverity(run.Results, threshold)
		return renderLintResults(r, run), nil
	}

	hasIssues, err := report(ctx)
	if err != nil {
		return err
	}

	if opts.Watch {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		return watchAndLint(ctx, opts.Paths, cmdCtx.Logger, func() {
			r.Println("")
			if _, err := report(ctx); err != nil {
				cmdCtx.Logger.Error("lint failed", "error", err)
			}
		})
	}

	if hasIssues {
		return ErrLintIssues
	}
	return nil
}

func jobsFor(cfg *config.Config, opts *LintOptions) int {
	jobs := opts.Jobs
	if jobs == 0 && cfg != nil {
		jobs = cfg.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return jobs
}

func buildLintConfig(cfg *config.Config, opts *LintOptions) *lint.Config {
	// Apply project config first (lower precedence)
	var lintCfg *lint.Config
	if cfg != nil {
		lintCfg = lint.FromLintConfig(cfg.Lint)
	} else {
		lintCfg = lint.NewConfig()
	}

	// Apply CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}

	// If --rule specified, disable all others
	return lintCfg.Only(opts.Rules...)
}

// lintFileResult holds lint results for a single file.
type lintFileResult struct {
	Path        string
	Diagnostics []lint.Diagnostic
}

// lintRun is the outcome of linting a set of paths.
type lintRun struct {
	Analyzed int
	Skipped  int
	Results  []lintFileResult
}

// fileLinter loads and analyzes files in parallel.
type fileLinter struct {
	analyzer *lint.Analyzer
	families *decl.Config
	loader   *loader.Loader
	scanner  *loader.Scanner
	logger   *slog.Logger
	jobs     int
}

// lintPaths expands paths into files and lints them. Files that fail to
// load are logged and skipped. Results are ordered by path and only hold
// files with diagnostics.
func (l *fileLinter) lintPaths(ctx context.Context, paths []string) (lintRun, error) {
	files, err := l.scanner.ScanPaths(paths)
	if err != nil {
		return lintRun{}, err
	}
	l.logger.Debug("linting files", "count", len(files), "jobs", l.jobs)

	results := make([]lintFileResult, len(files))
	loaded := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := l.loader.Load(gctx, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.logger.Warn("skipping file", "file", path, "error", err)
				return nil
			}
			loaded[i] = true
			results[i] = lintFileResult{
				Path:        path,
				Diagnostics: l.analyzer.AnalyzeFile(f, l.families),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return lintRun{}, fmt.Errorf("lint canceled: %w", err)
	}

	run := lintRun{}
	for i, res := range results {
		if !loaded[i] {
			run.Skipped++
			continue
		}
		run.Analyzed++
		if len(res.Diagnostics) > 0 {
			run.Results = append(run.Results, res)
		}
	}
	return run, nil
}

func filterBySeverity(results []lintFileResult, threshold core.Severity) []lintFileResult {
	var filtered []lintFileResult
	for _, r := range results {
		var diags []lint.Diagnostic
		for _, d := range r.Diagnostics {
			if d.Severity.AtLeast(threshold) {
				diags = append(diags, d)
			}
		}
		if len(diags) > 0 {
			filtered = append(filtered, lintFileResult{
				Path:        r.Path,
				Diagnostics: diags,
			})
		}
	}
	return filtered
}

func summarize(run lintRun) output.LintSummary {
	summary := output.LintSummary{
		FilesAnalyzed:   run.Analyzed,
		FilesWithIssues: len(run.Results),
	}
	for _, res := range run.Results {
		summary.TotalIssues += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
		}
	}
	return summary
}

// renderLintResults prints the run and reports whether any issue remained.
func renderLintResults(r *output.Renderer, run lintRun) bool {
	summary := summarize(run)

	if r.EffectiveMode() == output.ModeJSON {
		jsonOutput := output.LintOutput{
			Summary: summary,
			Files:   []output.LintFileResult{},
		}
		for _, res := range run.Results {
			fileResult := output.LintFileResult{Path: res.Path}
			for _, d := range res.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, toOutputDiagnostic(d))
			}
			jsonOutput.Files = append(jsonOutput.Files, fileResult)
		}
		_ = r.JSON(jsonOutput)
		return summary.TotalIssues > 0
	}

	if run.Skipped > 0 {
		r.Warning(fmt.Sprintf("%d files could not be parsed and were skipped", run.Skipped))
	}

	if summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No lint issues found in %d files", summary.FilesAnalyzed))
		return false
	}

	// Text/Markdown output
	styles := r.Styles()
	for _, res := range run.Results {
		r.Println(styles.FilePath.Render(res.Path))
		for _, d := range res.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
			if d.Pos.Line == 0 {
				loc = "-"
			}
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityStyle(r, d.Severity),
				styles.Bold.Render(d.RuleID),
				d.Message,
			)
			for _, info := range d.RelatedInfo {
				r.Println(styles.Muted.Render(fmt.Sprintf("           note: %s", info.Message)))
			}
			for _, fix := range d.Fixes {
				r.Println(styles.Muted.Render(fmt.Sprintf("           fix: %s", fix.Description)))
			}
		}
		r.Println("")
	}

	// Print summary
	summaryParts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	r.Printf("Summary: %s in %d of %d files\n",
		strings.Join(summaryParts, ", "), summary.FilesWithIssues, summary.FilesAnalyzed)

	return true
}

func toOutputDiagnostic(d lint.Diagnostic) output.LintDiagnostic {
	od := output.LintDiagnostic{
		RuleID:           d.RuleID,
		Severity:         d.Severity.String(),
		Message:          d.Message,
		Line:             d.Pos.Line,
		Column:           d.Pos.Column,
		EndLine:          d.EndPos.Line,
		EndColumn:        d.EndPos.Column,
		DocumentationURL: d.DocumentationURL,
	}
	for _, info := range d.RelatedInfo {
		od.Notes = append(od.Notes, info.Message)
	}
	for _, fix := range d.Fixes {
		of := output.LintFix{Description: fix.Description}
		for _, e := range fix.Edits {
			of.Edits = append(of.Edits, output.LintEdit{
				Kind:      string(e.Kind),
				Line:      e.Span.Start.Line,
				Column:    e.Span.Start.Column,
				EndLine:   e.Span.End.Line,
				EndColumn: e.Span.End.Column,
				Text:      e.Text,
			})
		}
		od.Fixes = append(od.Fixes, of)
	}
	return od
}

func severityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
