package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/declint/internal/loader"
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/syntax"
)

// DumpOptions holds options for the dump command.
type DumpOptions struct {
	Format string // table, json, yaml
	AST    bool   // Input is a syntax tree document
	Tree   bool   // Print the syntax tree instead of declarations
}

// dumpContainer is the serialized form of one container.
type dumpContainer struct {
	Family       string             `json:"family" yaml:"family"`
	Line         int                `json:"line" yaml:"line"`
	Declarations []decl.Declaration `json:"declarations" yaml:"declarations"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand() *cobra.Command {
	opts := &DumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the declarations collected from a file",
		Long: `Print the association, route and hook declarations found in a file, with
their kind, name, nesting level and namespace path. This is what the lint
rules see.

With --tree the parsed syntax tree is printed as a YAML document instead.
That document can be fed back with 'declint lint --ast'.`,
		Example: `  # Show collected declarations
  declint dump app/models/user.rb

  # As JSON
  declint dump config/routes.rb --format json

  # Export the syntax tree
  declint dump app/models/user.rb --tree > user.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, yaml")
	cmd.Flags().BoolVar(&opts.AST, "ast", false, "Treat the input as a YAML/JSON syntax tree document")
	cmd.Flags().BoolVar(&opts.Tree, "tree", false, "Print the syntax tree as YAML")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runDump(cmd *cobra.Command, path string, opts *DumpOptions) error {
	cmdCtx := NewCommandContext(cmd, "")
	l := loader.New(cmdCtx.Logger, loader.WithTrees(opts.AST))

	f, err := l.Load(cmd.Context(), path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Tree {
		return syntax.Encode(out, f, strings.Join(f.Lines, "\n"))
	}

	containers := decl.Containers(f, cmdCtx.Cfg.Families())
	dump := make([]dumpContainer, 0, len(containers))
	for _, c := range containers {
		dump = append(dump, dumpContainer{
			Family:       c.Family.Category,
			Line:         c.Node.Span.Start.Line,
			Declarations: c.Result.Declarations,
		})
	}

	switch strings.ToLower(opts.Format) {
	case "json":
		return cmdCtx.Renderer.JSON(dump)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("encode declarations: %w", err)
		}
		return enc.Close()
	case "table", "":
	default:
		return fmt.Errorf("invalid --format %q (use table, json or yaml)", opts.Format)
	}

	if len(dump) == 0 {
		_, _ = fmt.Fprintf(out, "No model classes or route blocks found in %s\n", path)
		return nil
	}

	for _, c := range dump {
		_, _ = fmt.Fprintf(out, "%s container at line %d (%d declarations)\n", c.Family, c.Line, len(c.Declarations))

		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Line", "Kind", "Method", "Name", "Through", "Level", "Scope"})
		for _, d := range c.Declarations {
			t.AppendRow(table.Row{
				d.StartLine(),
				d.Kind,
				d.Method,
				d.Name,
				d.Through,
				d.NestingLevel,
				d.Context().String(),
			})
		}
		t.Render()
		_, _ = fmt.Fprintln(out)
	}
	return nil
}
