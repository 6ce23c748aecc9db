package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/declint/pkg/core"
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/lint"
	_ "github.com/leapstack-labs/declint/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/declint/pkg/syntax"
	"github.com/leapstack-labs/declint/pkg/syntax/ruby"
	"github.com/leapstack-labs/declint/pkg/token"
)

func parse(t *testing.T, path, src string) *syntax.File {
	t.Helper()
	f, err := ruby.NewParser().Parse(context.Background(), []byte(src), path)
	require.NoError(t, err)
	return f
}

const unsortedModel = `class Post < ApplicationRecord
  has_many :tags
  has_many :comments
  belongs_to :author
end
`

func TestAnalyzer_RegisteredRules(t *testing.T) {
	assert.Len(t, lint.GetByFamily(decl.CategoryAssociation), 6)
	assert.Len(t, lint.GetByFamily(decl.CategoryRoute), 7)
	assert.Len(t, lint.GetByFamily(decl.CategoryHooks), 1)
	assert.Equal(t, 14, lint.Count())

	rule, ok := lint.GetByID("RT07")
	require.True(t, ok)
	assert.Equal(t, "route.array_notation", rule.Name)
	assert.True(t, rule.Info().AutoFixable)
}

func TestAnalyzer_SortedByPositionThenRule(t *testing.T) {
	diags := lint.NewAnalyzer(nil).AnalyzeFile(parse(t, "app/models/post.rb", unsortedModel), nil)

	var got []string
	for _, d := range diags {
		got = append(got, d.Pos.String()+" "+d.RuleID)
	}
	assert.Equal(t, []string{"2:3 MA04", "4:3 MA02"}, got)
}

func TestAnalyzer_Config(t *testing.T) {
	file := parse(t, "app/models/post.rb", unsortedModel)

	t.Run("disabled", func(t *testing.T) {
		config := lint.NewConfig().Disable("MA04")
		diags := lint.NewAnalyzer(config).AnalyzeFile(file, nil)
		require.Len(t, diags, 1)
		assert.Equal(t, "MA02", diags[0].RuleID)
	})

	t.Run("severity override", func(t *testing.T) {
		config := lint.NewConfig().SetSeverity("MA04", core.SeverityError)
		diags := lint.NewAnalyzer(config).AnalyzeFile(file, nil)
		require.Len(t, diags, 2)
		assert.Equal(t, core.SeverityError, diags[0].Severity)
		assert.Equal(t, core.SeverityWarning, diags[1].Severity)
	})

	t.Run("from lint config", func(t *testing.T) {
		config := lint.FromLintConfig(&core.LintConfig{
			Disabled: []string{"MA02"},
			Severity: map[string]string{"MA04": "info"},
		})
		diags := lint.NewAnalyzer(config).AnalyzeFile(file, nil)
		require.Len(t, diags, 1)
		assert.Equal(t, "MA04", diags[0].RuleID)
		assert.Equal(t, core.SeverityInfo, diags[0].Severity)
	})
}

func TestAnalyzer_FamilyOverrides(t *testing.T) {
	src := `class Post < Base
  has_many :tags
  has_many :comments
end
`
	file := parse(t, "app/models/post.rb", src)
	assert.Empty(t, lint.NewAnalyzer(nil).AnalyzeFile(file, nil))

	families := decl.DefaultConfig()
	families.Association = families.Association.Apply(decl.Overrides{BaseClasses: []string{"Base"}})
	diags := lint.NewAnalyzer(nil).AnalyzeFile(file, families)
	require.Len(t, diags, 1)
	assert.Equal(t, "MA04", diags[0].RuleID)
}

func TestAnalyzer_BothFamilies(t *testing.T) {
	src := `class Post < ApplicationRecord
  has_many :tags
  has_many :comments
end

Rails.application.routes.draw do
  resources :users
  resources :posts
end
`
	diags := lint.NewAnalyzer(nil).AnalyzeFile(parse(t, "app/models/post.rb", src), nil)
	require.Len(t, diags, 2)
	assert.Equal(t, "MA04", diags[0].RuleID)
	assert.Equal(t, "RT04", diags[1].RuleID)
	assert.Equal(t, 7, diags[1].Pos.Line)
}

func TestAnalyzer_Empty(t *testing.T) {
	a := lint.NewAnalyzer(nil)
	assert.Empty(t, a.AnalyzeFile(nil, nil))
	assert.Empty(t, a.AnalyzeFile(&syntax.File{}, nil))
	assert.Empty(t, a.AnalyzeFile(parse(t, "empty.rb", ""), nil))
}

func TestSortDiagnostics(t *testing.T) {
	diags := []lint.Diagnostic{
		{RuleID: "RT02", Pos: pos(3, 1)},
		{RuleID: "RT01", Pos: pos(3, 1)},
		{RuleID: "MA01", Pos: pos(1, 5)},
		{RuleID: "MA02", Pos: pos(1, 2)},
	}
	lint.SortDiagnostics(diags)

	var ids []string
	for _, d := range diags {
		ids = append(ids, d.RuleID)
	}
	assert.Equal(t, []string{"MA02", "MA01", "RT01", "RT02"}, ids)
}

func TestAnalyzer_TreeWithNilEntries(t *testing.T) {
	sym := func(s string) *syntax.Node { return &syntax.Node{Kind: syntax.KindSym, Text: s} }
	hasMany := func(line int, args ...*syntax.Node) *syntax.Node {
		return &syntax.Node{
			Kind: syntax.KindSend,
			Name: "has_many",
			Args: args,
			Span: token.Span{Start: token.Position{Line: line, Column: 3}, End: token.Position{Line: line, Column: 15}},
		}
	}
	class := func(body *syntax.Node) *syntax.File {
		return &syntax.File{
			Path:  "app/models/doctor.rb",
			Lines: []string{"class Doctor < ApplicationRecord", "", "", "end"},
			Root: &syntax.Node{
				Kind:  syntax.KindClass,
				Name:  "Doctor",
				Super: &syntax.Node{Kind: syntax.KindConst, Name: "ApplicationRecord"},
				Body:  body,
			},
		}
	}

	t.Run("nil statement", func(t *testing.T) {
		body := &syntax.Node{Kind: syntax.KindBegin, Children: []*syntax.Node{nil, hasMany(2, sym("b")), hasMany(3, sym("a"))}}
		var diags []lint.Diagnostic
		require.NotPanics(t, func() { diags = lint.NewAnalyzer(nil).AnalyzeFile(class(body), nil) })
		require.Len(t, diags, 1)
		assert.Equal(t, "MA04", diags[0].RuleID)
	})

	t.Run("nil argument", func(t *testing.T) {
		body := hasMany(2, sym("a"), nil)
		require.NotPanics(t, func() { lint.NewAnalyzer(nil).AnalyzeFile(class(body), nil) })
	})
}
