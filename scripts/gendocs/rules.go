package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	_ "github.com/leapstack-labs/declint/pkg/lint/rules" // register every rule family
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var familyDescriptions = map[string]string{
	decl.CategoryAssociation: "Rules for association declarations (`belongs_to`, `has_many`, `has_one`, `has_and_belongs_to_many`) inside ActiveRecord model classes.",
	decl.CategoryRoute:       "Rules for route declarations (`resources`, `resource`, `namespace`, `scope`, verb routes) inside a `routes.draw` block.",
	decl.CategoryHooks:       "Rules for `before`, `after` and `around` hooks in API request specs under `spec/requests/api`.",
}

var familyOrder = []string{decl.CategoryAssociation, decl.CategoryRoute, decl.CategoryHooks}

// generateRuleDocs writes an index page plus one page per rule. Page names
// match the paths produced by lint.BuildDocURL.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := lint.GetAll()
	if err := generateRulesIndex(outDir, rules); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md (%d rules)", len(rules))

	for _, rule := range rules {
		if err := generateRulePage(outDir, rule); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", rule.ID, err)
		}
	}
	return nil
}

func generateRulesIndex(outDir string, rules []lint.RuleDef) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Lint Rules", "Declaration order rules for Rails models and routes")
	w.GeneratedMarker()

	w.Header(1, "Lint Rules")
	w.Paragraph(fmt.Sprintf("declint ships %d rules across %d declaration families.", len(rules), len(familyOrder)))

	title := cases.Title(language.English)
	for _, family := range familyOrder {
		var rows [][]string
		for _, rule := range rules {
			if rule.Family != family {
				continue
			}
			fix := ""
			if rule.AutoFixable {
				fix = "yes"
			}
			rows = append(rows, []string{
				fmt.Sprintf("[%s](%s)", InlineCode(rule.ID), ruleFileName(rule.ID)),
				rule.Name,
				rule.Group,
				InlineCode(rule.Severity.String()),
				fix,
			})
		}
		if len(rows) == 0 {
			continue
		}

		w.Header(2, title.String(family)+" Rules")
		if desc, ok := familyDescriptions[family]; ok {
			w.Paragraph(desc)
		}
		w.Table([]string{"ID", "Name", "Group", "Severity", "Fix"}, rows)
	}

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

func generateRulePage(outDir string, rule lint.RuleDef) error {
	w := NewMarkdownWriter()

	w.Frontmatter(rule.ID+" "+rule.Name, cleanDescription(rule.Description))
	w.GeneratedMarker()
	writeRuleDoc(w, rule)

	return os.WriteFile(filepath.Join(outDir, ruleFileName(rule.ID)), w.Bytes(), 0600)
}

func ruleFileName(id string) string {
	return lint.DocPath(id) + ".md"
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.RuleDef) {
	w.Header(1, fmt.Sprintf("%s - %s", rule.ID, rule.Name))

	w.Line(fmt.Sprintf("%s %s", Bold("Family:"), rule.Family))
	w.Newline()
	w.Line(fmt.Sprintf("%s %s", Bold("Severity:"), InlineCode(rule.Severity.String())))
	w.Newline()
	if rule.AutoFixable {
		w.Line(fmt.Sprintf("%s diagnostics carry proposed edits", Bold("Fix:")))
		w.Newline()
	}

	w.Paragraph(cleanDescription(rule.Description))

	if rule.Rationale != "" {
		w.Header(2, "Why This Matters")
		w.Paragraph(rule.Rationale)
	}

	if rule.BadExample != "" {
		w.Header(2, "Bad")
		w.CodeBlock("ruby", rule.BadExample)
	}

	if rule.GoodExample != "" {
		w.Header(2, "Good")
		w.CodeBlock("ruby", rule.GoodExample)
	}

	if rule.Fix != "" {
		w.Header(2, "How to Fix")
		w.Paragraph(rule.Fix)
	}

	if len(rule.ConfigKeys) > 0 {
		w.Header(2, "Configuration")
		keys := make([]string, len(rule.ConfigKeys))
		for i, k := range rule.ConfigKeys {
			keys[i] = InlineCode(k)
		}
		w.Paragraph("This rule accepts the following options under " +
			InlineCode("lint.rules."+rule.ID) + ":")
		w.BulletList(keys)
	}
}
