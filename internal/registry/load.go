package registry

import (
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/trainflags/internal/conventions"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// flagFileValue implements --flagfile. Each occurrence loads its file at that
// point of the command line, so later arguments override the file.
type flagFileValue struct {
	r     *Registry
	paths []string
}

func (f *flagFileValue) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(f.paths, ",")
}

func (f *flagFileValue) Set(path string) error {
	f.paths = append(f.paths, path)
	return f.r.LoadFile(path)
}

// LoadFile applies the attributes of an HCL file as flag values, e.g.
//
//	batch_size = 64
//	hooks      = ["p", "eps"]
//	dtype      = "fp16"
//
// Attribute names may be flag names or aliases. Non-null loaded values count as
// explicitly set.
func (r *Registry) LoadFile(path string) error {
	slog.Debug("Loading flag file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse flag file %s: %w", path, diags)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("failed to read flag file %s: %w", path, diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		spec, ok := r.lookup(name)
		if !ok {
			errs = append(errs, fmt.Sprintf("unknown flag '%s'%s", name, conventions.DidYouMean(name, r.order)))
			continue
		}
		raw, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			errs = append(errs, fmt.Sprintf("flag '%s': %s", name, diags.Error()))
			continue
		}
		val, err := coerce(spec.Kind, raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("flag '%s': %v", name, err))
			continue
		}
		r.values[spec.Name] = val
		r.explicit[spec.Name] = !val.IsNull()
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid flag file %s:\n- %s", path, strings.Join(errs, "\n- "))
	}
	slog.Debug("Flag file loaded.", "path", path, "flags", len(names))
	return nil
}

// coerce converts an HCL value to the storage type of kind.
func coerce(kind Kind, raw cty.Value) (cty.Value, error) {
	if raw.IsNull() {
		return cty.NullVal(kind.Type()), nil
	}
	if !raw.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("value must be known")
	}
	if kind == KindList && raw.Type().Equals(cty.String) {
		return listVal(splitList(raw.AsString())), nil
	}
	val, err := convert.Convert(raw, kind.Type())
	if err != nil {
		return cty.NilVal, fmt.Errorf("expected %s: %w", kind, err)
	}
	if kind == KindInt {
		bf := val.AsBigFloat()
		if !bf.IsInt() {
			return cty.NilVal, fmt.Errorf("expected integer, got %s", formatValue(val))
		}
		if _, acc := bf.Int64(); acc != big.Exact {
			return cty.NilVal, fmt.Errorf("expected integer in range, got %s", formatValue(val))
		}
	}
	if kind == KindFloat {
		if f, _ := val.AsBigFloat().Float64(); math.IsInf(f, 0) {
			return cty.NilVal, fmt.Errorf("expected float in range, got %s", formatValue(val))
		}
	}
	if kind == KindList && val.LengthInt() == 0 {
		return cty.ListValEmpty(cty.String), nil
	}
	return val, nil
}
