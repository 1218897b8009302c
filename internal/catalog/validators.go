package catalog

import (
	"slices"

	"github.com/specialistvlad/trainflags/internal/conventions"
	"github.com/specialistvlad/trainflags/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// oneOf accepts only the listed strings. An unset value passes when allowUnset.
func oneOf(name string, choices []string, allowUnset bool) registry.Validator {
	return registry.NewValidator(name, func(v cty.Value) registry.Result {
		if v.IsNull() {
			if allowUnset {
				return registry.Pass()
			}
			return registry.Fail("a value is required; %s", conventions.ChoicesString(choices))
		}
		s := v.AsString()
		if slices.Contains(choices, s) {
			return registry.Pass()
		}
		return registry.Fail("'%s' is not allowed; %s%s", s, conventions.ChoicesString(choices), conventions.DidYouMean(s, choices))
	})
}

// positive accepts unset values and numbers greater than zero.
func positive(name string) registry.Validator {
	return registry.NewValidator(name, func(v cty.Value) registry.Result {
		if v.IsNull() || v.AsBigFloat().Sign() > 0 {
			return registry.Pass()
		}
		return registry.Fail("must be a positive number, got %s", v.AsBigFloat().Text('g', -1))
	})
}
