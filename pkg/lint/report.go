package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/declint/pkg/core"
	"github.com/leapstack-labs/declint/pkg/lint/checks"
)

// Reporter turns check findings into diagnostics for one rule.
type Reporter struct {
	RuleID   string
	Severity core.Severity
	// Format is the message template; finding Args are substituted into it.
	Format string
	// FixDescription labels the fix built from a finding's edit.
	FixDescription string
	Impact         ImpactLevel
}

// Report converts findings to diagnostics. Edits are attached as fixes and
// never applied.
func (r Reporter) Report(findings []checks.Finding) []Diagnostic {
	if len(findings) == 0 {
		return nil
	}
	diags := make([]Diagnostic, 0, len(findings))
	for _, f := range findings {
		diags = append(diags, r.diagnostic(f))
	}
	return diags
}

func (r Reporter) diagnostic(f checks.Finding) Diagnostic {
	d := Diagnostic{
		RuleID:      r.RuleID,
		Severity:    r.Severity,
		Message:     r.message(f.Args),
		ImpactScore: r.Impact.Int(),
	}
	if f.Decl != nil {
		d.Node = f.Decl.Node
		d.Pos = f.Decl.Span.Start
		d.EndPos = f.Decl.Span.End
	}
	if f.Node != nil {
		d.Node = f.Node
		d.Pos = f.Node.Span.Start
		d.EndPos = f.Node.Span.End
	}
	if f.Edit != nil {
		desc := r.FixDescription
		if desc == "" {
			desc = strings.ReplaceAll(string(f.Edit.Kind), "_", " ")
		}
		d.Fixes = []Fix{{Description: desc, Edits: []Edit{*f.Edit}}}
		d.AutoFixable = true
	}
	for _, note := range f.Notes {
		d.RelatedInfo = append(d.RelatedInfo, RelatedInfo{Pos: d.Pos, Message: note})
	}
	return d
}

func (r Reporter) message(args []any) string {
	if len(args) == 0 {
		return r.Format
	}
	return fmt.Sprintf(r.Format, args...)
}
