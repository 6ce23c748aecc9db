package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/declint/internal/cli/output"
	"github.com/leapstack-labs/declint/pkg/core"
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	_ "github.com/leapstack-labs/declint/pkg/lint/rules" // register every rule family
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Family  string // Filter by family: association, route, hooks
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by family (association, route or hooks) and group (e.g.,
grouping, sorting, spacing). Use --verbose to see descriptions and
rationale.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  declint rules

  # Show details for a specific rule
  declint rules MA04

  # List route rules only
  declint rules --family route

  # List rules in the spacing group
  declint rules --group spacing

  # Output as JSON
  declint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVar(&opts.Family, "family", "", "Filter by family: association, route, hooks")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func allRuleInfo() []core.RuleInfo {
	defs := lint.GetAll()
	infos := make([]core.RuleInfo, 0, len(defs))
	for _, d := range defs {
		infos = append(infos, d.Info())
	}
	return infos
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer

	rules := filterRulesByOptions(allRuleInfo(), opts)

	// Sort by family, then group, then ID
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Family != rules[j].Family {
			return rules[i].Family < rules[j].Family
		}
		if rules[i].Group != rules[j].Group {
			return rules[i].Group < rules[j].Group
		}
		return rules[i].ID < rules[j].ID
	})

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules, opts.Verbose)
	default:
		return listRulesText(r, rules, opts.Verbose)
	}
}

func filterRulesByOptions(rules []core.RuleInfo, opts *RulesOptions) []core.RuleInfo {
	if opts.Group == "" && opts.Family == "" {
		return rules
	}

	var filtered []core.RuleInfo
	for _, r := range rules {
		if opts.Group != "" && r.Group != opts.Group {
			continue
		}
		if opts.Family != "" && r.Family != opts.Family {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer

	def, ok := lint.GetByID(strings.ToUpper(strings.TrimSpace(ruleID)))
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	rule := def.Info()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, &rule)
	default:
		return showRuleText(r, &rule)
	}
}

// familyLabel returns the section title for a rule family.
func familyLabel(family string) string {
	return cases.Title(language.English).String(family) + " Rules"
}

// listRulesText outputs rules in styled text format, one table per family.
func listRulesText(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	styles := r.Styles()
	counts := countByFamily(rules)

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d association, %d route, %d hooks)",
		counts[decl.CategoryAssociation], counts[decl.CategoryRoute], counts[decl.CategoryHooks])))
	r.Println("")

	titleCaser := cases.Title(language.English)
	for i := 0; i < len(rules); {
		family := rules[i].Family
		r.Println(styles.Header2.Render(familyLabel(family)))

		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		header := table.Row{"ID", "Name", "Group", "Severity", "Fix"}
		if verbose {
			header = append(header, "Description")
		}
		t.AppendHeader(header)

		for ; i < len(rules) && rules[i].Family == family; i++ {
			rule := rules[i]
			fix := ""
			if rule.AutoFixable {
				fix = "yes"
			}
			row := table.Row{
				rule.ID,
				rule.Name,
				titleCaser.String(rule.Group),
				getSeverityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()),
				fix,
			}
			if verbose {
				row = append(row, truncateOneLine(rule.Description, 60))
			}
			t.AppendRow(row)
		}
		t.Render()
		r.Println("")
	}

	r.Println(styles.Muted.Render("Use 'declint rules <rule-id>' for detailed documentation"))
	r.Println("")

	return nil
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	r.Println("# Lint Rules")
	r.Println("")

	titleCaser := cases.Title(language.English)
	currentFamily := ""
	currentGroup := ""

	for _, rule := range rules {
		if rule.Family != currentFamily {
			currentFamily = rule.Family
			currentGroup = ""
			r.Println("## " + familyLabel(currentFamily))
			r.Println("")
		}

		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		r.Printf("- **%s** - %s (`%s`)\n", rule.ID, rule.Name, rule.DefaultSeverity.String())
		if verbose {
			r.Println("  " + rule.Description)
			if rule.Rationale != "" {
				r.Println("  > " + truncateOneLine(rule.Rationale, 200))
			}
		}
	}

	r.Println("")
	return nil
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []core.RuleInfo `json:"rules"`
	Count struct {
		Association int `json:"association"`
		Route       int `json:"route"`
		Hooks       int `json:"hooks"`
		Total       int `json:"total"`
	} `json:"count"`
}

// listRulesJSON outputs rules in JSON format.
func listRulesJSON(r *output.Renderer, rules []core.RuleInfo) error {
	jsonOutput := RulesJSONOutput{
		Rules: rules,
	}
	counts := countByFamily(rules)
	jsonOutput.Count.Association = counts[decl.CategoryAssociation]
	jsonOutput.Count.Route = counts[decl.CategoryRoute]
	jsonOutput.Count.Hooks = counts[decl.CategoryHooks]
	jsonOutput.Count.Total = len(rules)

	return r.JSON(jsonOutput)
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule *core.RuleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Family"), rule.Family)
	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), rule.DefaultSeverity.String())
	if rule.AutoFixable {
		r.Printf("  %s: %s\n", styles.Bold.Render("Fix"), "proposes edits")
	}
	r.Printf("  %s: %s\n", styles.Bold.Render("Docs"), lint.BuildDocURL(rule.ID))
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  Options: %s\n", strings.Join(rule.ConfigKeys, ", "))
		r.Println("")
	}

	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule *core.RuleInfo) error {
	r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
	r.Printf("**Family:** %s | **Group:** %s | **Severity:** `%s`\n\n", rule.Family, rule.Group, rule.DefaultSeverity.String())
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println("## Bad Example")
		r.Println("")
		r.Println("```ruby")
		r.Println(rule.BadExample)
		r.Println("```")
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println("## Good Example")
		r.Println("")
		r.Println("```ruby")
		r.Println(rule.GoodExample)
		r.Println("```")
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println("## How to Fix")
		r.Println("")
		r.Println(rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println("## Configuration")
		r.Println("")
		r.Printf("Options: `%s`\n", strings.Join(rule.ConfigKeys, "`, `"))
		r.Println("")
	}

	r.Printf("[Documentation](%s)\n", lint.BuildDocURL(rule.ID))
	return nil
}

// Helper functions

func countByFamily(rules []core.RuleInfo) map[string]int {
	counts := make(map[string]int)
	for _, rule := range rules {
		counts[rule.Family]++
	}
	return counts
}

func getSeverityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
