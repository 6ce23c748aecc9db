package lint

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeOptions decodes rule options into a copy of defaults. Keys missing
// from opts keep their default value. Values are converted weakly, so
// "true", 1 and true all decode into a bool field and YAML or JSON numbers
// decode into ints.
//
// Fields are matched by their `mapstructure` tag:
//
//	type sortingOptions struct {
//		MinDeclarations int  `mapstructure:"min_declarations"`
//		DependencyAware bool `mapstructure:"dependency_aware"`
//	}
//
// Unknown keys are reported in the error but the known ones are still
// applied. A value that cannot be converted returns defaults.
func DecodeOptions[T any](opts map[string]any, defaults T) (T, error) {
	out := defaults
	if len(opts) == 0 {
		return out, nil
	}
	unused, err := decodeInto(opts, &out)
	if err != nil {
		return defaults, err
	}
	if len(unused) > 0 {
		return out, fmt.Errorf("unknown rule options: %s", strings.Join(unused, ", "))
	}
	return out, nil
}

func decodeInto(opts map[string]any, target any) ([]string, error) {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return nil, fmt.Errorf("create options decoder: %w", err)
	}
	if err := dec.Decode(opts); err != nil {
		return nil, fmt.Errorf("decode rule options: %w", err)
	}
	sort.Strings(md.Unused)
	return md.Unused, nil
}

// ValidateOptions checks opts against the rule's ConfigKeys and, when the
// rule declares an Options type, that every value converts to it.
func (r RuleDef) ValidateOptions(opts map[string]any) error {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		if !slices.Contains(r.ConfigKeys, k) {
			errs = append(errs, fmt.Errorf("unknown option %q (%s)", k, r.acceptedKeys()))
		}
	}
	if r.Options != nil && len(errs) == 0 {
		target := reflect.New(reflect.TypeOf(r.Options)).Interface()
		if _, err := decodeInto(opts, target); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r RuleDef) acceptedKeys() string {
	if len(r.ConfigKeys) == 0 {
		return "the rule takes no options"
	}
	return "accepts " + strings.Join(r.ConfigKeys, ", ")
}
