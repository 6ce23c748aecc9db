package decl

import (
	"maps"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leapstack-labs/declint/pkg/syntax"
)

// Category names.
const (
	CategoryAssociation = "association"
	CategoryRoute       = "route"
	CategoryHooks       = "hooks"
)

// Route kinds.
const (
	RouteSimple    = "simple"
	RouteResource  = "resource"
	RouteNamespace = "namespace"
	RouteDraw      = "draw"
)

// DefaultName is the name given to a declaration whose name cannot be
// derived from its arguments.
const DefaultName = "unknown"

// NameFunc derives a declaration name from its call node.
type NameFunc func(call *syntax.Node, kind string) string

// Family describes one category of declarations: which calls belong to it,
// which calls open a nested scope, and where its containers are found.
type Family struct {
	// Category is the family tag stamped on each declaration.
	Category string

	// Kinds maps a call name to its grouping kind.
	Kinds map[string]string

	// Scopes lists block-headed calls whose bodies are descended into.
	Scopes []string

	// PathOptions lists option keys preferred as a scope's path segment.
	PathOptions []string

	// BaseClasses lists superclasses that mark a class body as a container.
	BaseClasses []string

	// Files lists path patterns whose whole file is a container when no
	// other container is found in it.
	Files []string

	// DependencyAware enables through references and dependency sorting.
	DependencyAware bool

	// AllowCallReceiver accepts calls whose receiver is itself a call
	// (e.g. "map.resources"). Calls with any other receiver never match.
	AllowCallReceiver bool

	// Name derives the declaration name. Defaults to FirstLiteralName.
	Name NameFunc

	// ScopeName, when set, replaces the path-option rule of Segment.
	ScopeName func(call *syntax.Node) string
}

// Match returns the grouping kind of call if it belongs to the family.
func (f *Family) Match(call *syntax.Node) (string, bool) {
	if call == nil || call.Kind != syntax.KindSend {
		return "", false
	}
	if call.Receiver != nil && !(f.AllowCallReceiver && call.Receiver.Kind == syntax.KindSend) {
		return "", false
	}
	kind, ok := f.Kinds[call.Name]
	return kind, ok
}

// IsScope reports whether a block headed by call opens a nested scope.
func (f *Family) IsScope(call *syntax.Node) bool {
	return call != nil && slices.Contains(f.Scopes, call.Name)
}

// Segment returns the namespace path segment contributed by a scope call:
// the first path-like option, else the first literal argument, else
// DefaultName.
func (f *Family) Segment(call *syntax.Node) string {
	if f.ScopeName != nil {
		return f.ScopeName(call)
	}
	for _, key := range f.PathOptions {
		if v, ok := call.Option(key).Literal(); ok {
			return v
		}
	}
	if v, ok := call.FirstArg().Literal(); ok {
		return v
	}
	return DefaultName
}

// NameOf returns the declaration name for call.
func (f *Family) NameOf(call *syntax.Node, kind string) string {
	if f.Name != nil {
		return f.Name(call, kind)
	}
	return FirstLiteralName(call, kind)
}

// ThroughOf returns the through reference of call, if the family supports
// dependencies and the option holds a literal.
func (f *Family) ThroughOf(call *syntax.Node) string {
	if !f.DependencyAware {
		return ""
	}
	v, _ := call.Option("through").Literal()
	return v
}

// IsBaseClass reports whether super names one of the family's base classes.
func (f *Family) IsBaseClass(super *syntax.Node) bool {
	if super == nil || super.Kind != syntax.KindConst {
		return false
	}
	return slices.Contains(f.BaseClasses, strings.TrimPrefix(super.Name, "::"))
}

// MatchesFile reports whether filePath matches one of the family's file
// patterns. Patterns use doublestar syntax and are matched against every
// trailing run of path segments, so "config/routes/*.rb" matches an
// absolute path as well as a relative one.
func (f *Family) MatchesFile(filePath string) bool {
	if filePath == "" {
		return false
	}
	segs := strings.Split(strings.Trim(path.Clean(strings.ReplaceAll(filePath, "\\", "/")), "/"), "/")
	for _, pattern := range f.Files {
		for i := range segs {
			if ok, _ := doublestar.Match(pattern, strings.Join(segs[i:], "/")); ok {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of f.
func (f *Family) Clone() *Family {
	c := *f
	c.Kinds = maps.Clone(f.Kinds)
	c.Scopes = slices.Clone(f.Scopes)
	c.PathOptions = slices.Clone(f.PathOptions)
	c.BaseClasses = slices.Clone(f.BaseClasses)
	c.Files = slices.Clone(f.Files)
	return &c
}

// FirstLiteralName names a declaration after its first symbol or string
// argument.
func FirstLiteralName(call *syntax.Node, _ string) string {
	if v, ok := call.FirstArg().Literal(); ok {
		return v
	}
	return DefaultName
}

// RouteName names a route declaration by its kind:
//
//	root            "root"
//	draw :admin     "admin" (bare draw is "draw")
//	get "about"     "about"
//	get "a" => "b"  "a" (first hash key)
//	resources :x    "x"
func RouteName(call *syntax.Node, kind string) string {
	first := call.FirstArg()
	switch {
	case call.Name == "root":
		return "root"
	case kind == RouteDraw:
		if first != nil && first.Kind == syntax.KindSym {
			return first.Text
		}
		return "draw"
	case kind == RouteSimple:
		if first != nil && first.Kind == syntax.KindStr {
			return first.Text
		}
		if first != nil && first.Kind == syntax.KindHash && len(first.Children) > 0 && first.Children[0] != nil {
			if k, ok := first.Children[0].Key.Literal(); ok {
				return k
			}
		}
		return DefaultName
	default:
		if v, ok := first.Literal(); ok {
			return v
		}
		return DefaultName
	}
}

// HookName names a hook after its literal scope argument ("each", "all",
// "suite"), defaulting to "each".
func HookName(call *syntax.Node, _ string) string {
	if v, ok := call.FirstArg().Literal(); ok {
		return v
	}
	return "each"
}

// BlockScopeName names a scope after its first literal argument (or its
// call name) and its start line, so sibling groups with the same
// description stay apart: `response "200" do` on line 12 is "200@12".
func BlockScopeName(call *syntax.Node) string {
	label := call.Name
	if v, ok := call.FirstArg().Literal(); ok {
		label = v
	}
	return label + "@" + strconv.Itoa(call.Span.Start.Line)
}

// Associations returns the default association family.
func Associations() *Family {
	return &Family{
		Category: CategoryAssociation,
		Kinds: map[string]string{
			"belongs_to":              "belongs_to",
			"has_one":                 "has_one",
			"has_many":                "has_many",
			"has_and_belongs_to_many": "has_and_belongs_to_many",
		},
		Scopes:          []string{"with_options"},
		PathOptions:     []string{"path", "module"},
		BaseClasses:     []string{"ApplicationRecord", "ActiveRecord::Base"},
		DependencyAware: true,
		Name:            FirstLiteralName,
	}
}

// Routes returns the default route family.
func Routes() *Family {
	kinds := make(map[string]string)
	for kind, methods := range map[string][]string{
		RouteSimple:    {"get", "post", "put", "patch", "delete", "head", "options", "match", "root"},
		RouteResource:  {"resource", "resources"},
		RouteNamespace: {"namespace", "scope", "concern"},
		RouteDraw:      {"draw"},
	} {
		for _, m := range methods {
			kinds[m] = kind
		}
	}
	return &Family{
		Category: CategoryRoute,
		Kinds:    kinds,
		Scopes: []string{
			"namespace", "scope", "concern", "resources", "resource",
			"member", "collection", "constraints", "defaults", "controller",
		},
		PathOptions:       []string{"path", "module"},
		Files:             []string{"routes.rb", "config/routes/*.rb"},
		AllowCallReceiver: true,
		Name:              RouteName,
	}
}

// Hooks returns the default family of setup hooks in API request specs.
// Every example group is a scope of its own.
func Hooks() *Family {
	return &Family{
		Category: CategoryHooks,
		Kinds: map[string]string{
			"before": "before",
			"after":  "after",
			"around": "around",
		},
		Scopes: []string{
			"describe", "context", "feature", "shared_context", "shared_examples",
			"path", "response", "get", "post", "put", "patch", "delete", "head", "options",
		},
		Files:     []string{"spec/requests/api/**/*.rb"},
		Name:      HookName,
		ScopeName: BlockScopeName,
	}
}

// Config holds the families the linter recognizes.
type Config struct {
	Association *Family
	Route       *Family
	Hooks       *Family
}

// DefaultConfig returns the built-in association, route and hook families.
func DefaultConfig() *Config {
	return &Config{
		Association: Associations(),
		Route:       Routes(),
		Hooks:       Hooks(),
	}
}

// Families returns the configured families in a fixed order, skipping nil
// entries.
func (c *Config) Families() []*Family {
	var out []*Family
	for _, f := range []*Family{c.Association, c.Route, c.Hooks} {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

// Family returns the family with the given category, or nil.
func (c *Config) Family(category string) *Family {
	for _, f := range c.Families() {
		if f.Category == category {
			return f
		}
	}
	return nil
}

// Overrides is the user-configurable part of a Family. Empty fields keep
// the defaults.
type Overrides struct {
	Kinds       map[string]string `koanf:"kinds" mapstructure:"kinds"`
	Scopes      []string          `koanf:"scopes" mapstructure:"scopes"`
	PathOptions []string          `koanf:"path_options" mapstructure:"path_options"`
	BaseClasses []string          `koanf:"base_classes" mapstructure:"base_classes"`
	Files       []string          `koanf:"files" mapstructure:"files"`
}

// Apply returns a copy of f with o applied. Kinds are merged; an entry with
// an empty kind removes the call from the family. List fields replace the
// defaults when non-empty.
func (f *Family) Apply(o Overrides) *Family {
	out := f.Clone()
	for name, kind := range o.Kinds {
		if kind == "" {
			delete(out.Kinds, name)
			continue
		}
		out.Kinds[name] = kind
	}
	if len(o.Scopes) > 0 {
		out.Scopes = slices.Clone(o.Scopes)
	}
	if len(o.PathOptions) > 0 {
		out.PathOptions = slices.Clone(o.PathOptions)
	}
	if len(o.BaseClasses) > 0 {
		out.BaseClasses = slices.Clone(o.BaseClasses)
	}
	if len(o.Files) > 0 {
		out.Files = slices.Clone(o.Files)
	}
	return out
}
