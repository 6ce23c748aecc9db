package association

import (
	"github.com/leapstack-labs/declint/pkg/lint"
)

// Option keys.
const (
	optMinDeclarations = "min_declarations"
	optDependencyAware = "dependency_aware"
)

type structureOptions struct {
	MinDeclarations int `mapstructure:"min_declarations"`
}

type sortingOptions struct {
	MinDeclarations int  `mapstructure:"min_declarations"`
	DependencyAware bool `mapstructure:"dependency_aware"`
}

// enough decodes the min_declarations option and reports whether the unit
// holds at least that many associations. Invalid options fall back to the
// defaults.
func enough(unit *lint.Unit, opts map[string]any) bool {
	o, _ := lint.DecodeOptions(opts, structureOptions{MinDeclarations: 2})
	return len(unit.Declarations()) >= o.MinDeclarations
}
