package route_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/declint/pkg/lint"
	_ "github.com/leapstack-labs/declint/pkg/lint/rules/route" // register rules
	"github.com/leapstack-labs/declint/pkg/syntax/ruby"
)

func analyzeFile(t *testing.T, path, src string, config *lint.Config) []lint.Diagnostic {
	t.Helper()
	f, err := ruby.NewParser().Parse(context.Background(), []byte(src), path)
	require.NoError(t, err)
	return lint.NewAnalyzer(config).AnalyzeFile(f, nil)
}

func analyze(t *testing.T, src string, ids ...string) []lint.Diagnostic {
	t.Helper()
	return analyzeFile(t, "config/routes.rb", src, lint.NewConfig().Only(ids...))
}

func lines(diags []lint.Diagnostic) []int {
	out := make([]int, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Pos.Line)
	}
	return out
}

const mixedRoutes = `Rails.application.routes.draw do
  get "about", to: "pages#about"
  resources :users
  get "contact", to: "pages#contact"
end
`

func TestRouteRules(t *testing.T) {
	tests := []struct {
		name string
		rule string
		src  string
		want []int
	}{
		{"grouping", "RT01", mixedRoutes, []int{4}},
		{
			name: "grouping counts nested routes",
			rule: "RT01",
			src: `Rails.application.routes.draw do
  resources :users
  namespace :admin do
    resources :reports
  end
  resources :posts
end
`,
			want: []int{4},
		},
		{"separation", "RT02", mixedRoutes, []int{3, 4}},
		{
			name: "scattering",
			rule: "RT03",
			src: `Rails.application.routes.draw do
  resources :users
  mount Sidekiq::Web => "/sidekiq"
  resources :posts
end
`,
			want: []int{4},
		},
		{
			name: "sorting",
			rule: "RT04",
			src: `Rails.application.routes.draw do
  resources :users
  resources :posts
end
`,
			want: []int{2},
		},
		{
			name: "sorting ignores root",
			rule: "RT04",
			src: `Rails.application.routes.draw do
  root "home#index"
  get "about", to: "pages#about"
  get "contact", to: "pages#contact"
end
`,
			want: []int{},
		},
		{
			name: "sorting per namespace level",
			rule: "RT04",
			src: `Rails.application.routes.draw do
  resources :users
  namespace :admin do
    resources :zebras
    resources :apples
  end
  resources :accounts
end
`,
			want: []int{2, 4},
		},
		{
			name: "consistent spacing",
			rule: "RT05",
			src: `Rails.application.routes.draw do
  resources :posts

  resources :users
end
`,
			want: []int{4},
		},
		{
			name: "root after simple route",
			rule: "RT06",
			src: `Rails.application.routes.draw do
  get "about", to: "pages#about"
  root "home#index"
end
`,
			want: []int{3},
		},
		{
			name: "root first",
			rule: "RT06",
			src: `Rails.application.routes.draw do
  root "home#index"
  get "about", to: "pages#about"
end
`,
			want: []int{},
		},
		{
			name: "array notation",
			rule: "RT07",
			src: `Rails.application.routes.draw do
  resources :users, only: [:index]
  resources :posts, only: [:index, :show]
  namespace :admin do
    resources :reports, except: ["destroy"]
  end
end
`,
			want: []int{2, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := analyze(t, tt.src, tt.rule)
			for _, d := range diags {
				assert.Equal(t, tt.rule, d.RuleID)
			}
			assert.Equal(t, tt.want, lines(diags))
		})
	}
}

func TestRT04_Messages(t *testing.T) {
	src := `Rails.application.routes.draw do
  resources :users
  namespace :admin do
    resources :zebras
    resources :apples
  end
  resources :accounts
end
`
	diags := analyze(t, src, "RT04")
	require.Len(t, diags, 2)
	assert.Equal(t,
		"Sort routes of the same type alphabetically within the same namespace level. Expected order: accounts, users.",
		diags[0].Message)
	assert.Contains(t, diags[1].Message, "Expected order: apples, zebras.")
}

func TestRT04_DuplicateNames(t *testing.T) {
	src := `Rails.application.routes.draw do
  get "b"
  get "a"
  get "b"
end
`
	diags := analyze(t, src, "RT04")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Expected order: a, b.")
}

func TestRT04_IncludeRoot(t *testing.T) {
	src := `Rails.application.routes.draw do
  root "home#index"
  get "about", to: "pages#about"
end
`
	config := lint.NewConfig().Only("RT04").SetRuleOptions("RT04", map[string]any{"exclude_root": false})
	diags := analyzeFile(t, "config/routes.rb", src, config)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Expected order: about, root.")
}

func TestRT07_Fix(t *testing.T) {
	src := `Rails.application.routes.draw do
  resources :users, only: [:index]
end
`
	diags := analyze(t, src, "RT07")
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "Unnecessary array notation for single element. Use `only: :index` instead of `only: [:index]`.", d.Message)
	require.Len(t, d.Fixes, 1)
	edit := d.Fixes[0].Edits[0]
	assert.Equal(t, "replace", string(edit.Kind))
	assert.Equal(t, ":index", edit.Text)
	assert.Equal(t, 2, edit.Span.Start.Line)
	assert.Equal(t, d.Pos, edit.Span.Start)
}

func TestRoutesSubFile(t *testing.T) {
	src := `resources :users
resources :posts
`
	diags := analyzeFile(t, "config/routes/admin.rb", src, lint.NewConfig().Only("RT04"))
	assert.Equal(t, []int{1}, lines(diags))
}

func TestRoutesOutsideRoutesFile(t *testing.T) {
	src := `resources :users
resources :posts
`
	diags := analyzeFile(t, "lib/tasks/routes_helper.rb", src, lint.NewConfig().Only("RT04"))
	assert.Empty(t, diags)
}
