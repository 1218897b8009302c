package registry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// flagValue adapts a registry entry to flag.Value. The same instance is
// registered under the flag's name and its alias.
type flagValue struct {
	r    *Registry
	name string
}

func (v *flagValue) String() string {
	if v == nil || v.r == nil {
		return ""
	}
	return formatValue(v.r.values[v.name])
}

func (v *flagValue) Set(s string) error {
	spec := v.r.specs[v.name]
	val, err := parseValue(spec.Kind, s)
	if err != nil {
		return err
	}
	v.r.values[v.name] = val
	v.r.explicit[v.name] = true
	return nil
}

// IsBoolFlag lets boolean flags be passed without a value.
func (v *flagValue) IsBoolFlag() bool {
	return v.r.specs[v.name].Kind == KindBool
}

func parseValue(kind Kind, s string) (cty.Value, error) {
	switch kind {
	case KindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return cty.NilVal, fmt.Errorf("invalid integer %q", s)
		}
		return cty.NumberIntVal(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return cty.NilVal, fmt.Errorf("invalid float %q", s)
		}
		return cty.NumberFloatVal(f), nil
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return cty.NilVal, fmt.Errorf("invalid bool %q", s)
		}
		return cty.BoolVal(b), nil
	case KindList:
		return listVal(splitList(s)), nil
	default:
		return cty.StringVal(s), nil
	}
}

func splitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

func listVal(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, it := range items {
		vals[i] = cty.StringVal(it)
	}
	return cty.ListVal(vals)
}

// formatValue renders a value the way it would be typed on the command line.
func formatValue(v cty.Value) string {
	if v == cty.NilVal || v.IsNull() {
		return ""
	}
	switch {
	case v.Type().Equals(cty.String):
		return v.AsString()
	case v.Type().Equals(cty.Number):
		return v.AsBigFloat().Text('g', -1)
	case v.Type().Equals(cty.Bool):
		return strconv.FormatBool(v.True())
	case v.Type().IsListType():
		var parts []string
		for _, e := range v.AsValueSlice() {
			parts = append(parts, formatValue(e))
		}
		return strings.Join(parts, ",")
	}
	return v.GoString()
}

// Value returns the current value of a flag. It panics for undefined flags.
func (r *Registry) Value(name string) cty.Value {
	r.mustSpec(name)
	return r.values[name]
}

// Values returns the current values of the named flags.
func (r *Registry) Values(names ...string) map[string]cty.Value {
	out := make(map[string]cty.Value, len(names))
	for _, n := range names {
		out[n] = r.Value(n)
	}
	return out
}

// IsSet reports whether the flag was supplied on the command line or in a
// flag file, as opposed to holding its default. A flag file entry of null
// resets the flag to unset.
func (r *Registry) IsSet(name string) bool {
	r.mustSpec(name)
	return r.explicit[name]
}

func (r *Registry) typed(name string, kinds ...Kind) cty.Value {
	spec := r.mustSpec(name)
	for _, k := range kinds {
		if spec.Kind == k {
			return r.values[name]
		}
	}
	panic(fmt.Sprintf("flag '%s' is a %s flag, not a %s flag", name, spec.Kind, kinds[0]))
}

func fromCty(name string, v cty.Value, target any) {
	if err := gocty.FromCtyValue(v, target); err != nil {
		panic(fmt.Errorf("flag '%s': %w", name, err))
	}
}

// String returns a string flag's value, or "" when it has none.
func (r *Registry) String(name string) string {
	s, _ := r.OptionalString(name)
	return s
}

// OptionalString returns a string flag's value and whether it has one.
func (r *Registry) OptionalString(name string) (string, bool) {
	v := r.typed(name, KindString)
	if v.IsNull() {
		return "", false
	}
	return v.AsString(), true
}

// Int returns an integer flag's value, or 0 when it has none.
func (r *Registry) Int(name string) int {
	n, _ := r.OptionalInt(name)
	return n
}

// OptionalInt returns an integer flag's value and whether it has one.
func (r *Registry) OptionalInt(name string) (int, bool) {
	v := r.typed(name, KindInt)
	if v.IsNull() {
		return 0, false
	}
	var n int
	fromCty(name, v, &n)
	return n, true
}

// Float returns a float flag's value, or 0 when it has none.
func (r *Registry) Float(name string) float64 {
	f, _ := r.OptionalFloat(name)
	return f
}

// OptionalFloat returns a float flag's value and whether it has one.
func (r *Registry) OptionalFloat(name string) (float64, bool) {
	v := r.typed(name, KindFloat, KindInt)
	if v.IsNull() {
		return 0, false
	}
	var f float64
	fromCty(name, v, &f)
	return f, true
}

// Bool returns a boolean flag's value.
func (r *Registry) Bool(name string) bool {
	v := r.typed(name, KindBool)
	if v.IsNull() {
		return false
	}
	return v.True()
}

// List returns a list flag's items.
func (r *Registry) List(name string) []string {
	v := r.typed(name, KindList)
	if v.IsNull() || v.LengthInt() == 0 {
		return nil
	}
	var items []string
	fromCty(name, v, &items)
	return items
}
