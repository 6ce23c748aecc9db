package route

import (
	"github.com/leapstack-labs/declint/pkg/lint"
)

// Option keys.
const (
	optMinDeclarations = "min_declarations"
	optExcludeRoot     = "exclude_root"
)

type structureOptions struct {
	MinDeclarations int `mapstructure:"min_declarations"`
}

type sortingOptions struct {
	MinDeclarations int  `mapstructure:"min_declarations"`
	ExcludeRoot     bool `mapstructure:"exclude_root"`
}

func minDeclarations(opts map[string]any, def int) int {
	o, _ := lint.DecodeOptions(opts, structureOptions{MinDeclarations: def})
	return o.MinDeclarations
}

func enough(unit *lint.Unit, opts map[string]any) bool {
	return len(unit.Declarations()) >= minDeclarations(opts, 2)
}
