package registry

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/zclconf/go-cty/cty"
)

// Names of the flags every registry provides.
const (
	FlagFileFlag = "flagfile"
	HelpFullFlag = "helpfull"
)

// Kind is the type of value a flag holds.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindList
)

// Type returns the cty type used to store values of this kind.
func (k Kind) Type() cty.Type {
	switch k {
	case KindInt, KindFloat:
		return cty.Number
	case KindBool:
		return cty.Bool
	case KindList:
		return cty.List(cty.String)
	default:
		return cty.String
	}
}

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindList:
		return "comma separated list"
	default:
		return "string"
	}
}

// FlagSpec describes one flag. A null Default means the flag has no default.
type FlagSpec struct {
	Name    string
	Alias   string
	Kind    Kind
	Help    string
	Default cty.Value
}

// Registry holds all flag definitions, parsed values, validators and key-flag
// sets for a single program.
type Registry struct {
	program string
	output  io.Writer
	flagSet *flag.FlagSet

	specs      map[string]*FlagSpec
	aliases    map[string]string
	order      []string
	values     map[string]cty.Value
	explicit   map[string]bool
	required   []string
	validators []Validator
	keyFlags   map[string]*KeyFlagSet

	helpFull bool
	parsed   bool
}

// New creates an empty registry for the named program. Help and parse errors
// are written to output.
func New(program string, output io.Writer) *Registry {
	r := &Registry{
		program:  program,
		output:   output,
		flagSet:  flag.NewFlagSet(program, flag.ContinueOnError),
		specs:    make(map[string]*FlagSpec),
		aliases:  make(map[string]string),
		values:   make(map[string]cty.Value),
		explicit: make(map[string]bool),
		keyFlags: make(map[string]*KeyFlagSet),
	}
	r.flagSet.SetOutput(output)
	r.flagSet.Usage = func() { r.PrintUsage(output) }
	r.flagSet.Var(&flagFileValue{r: r}, FlagFileFlag, "Load flag values from an HCL file of name = value attributes.")
	r.flagSet.BoolVar(&r.helpFull, HelpFullFlag, false, "Show help for every defined flag.")
	return r
}

// Program returns the program name the registry was created with.
func (r *Registry) Program() string {
	return r.program
}

// Define registers a flag. It panics if the name or alias is already taken,
// if the default does not match the kind, or if Parse has already run.
func (r *Registry) Define(spec FlagSpec) {
	if r.parsed {
		panic(fmt.Sprintf("flag '%s' defined after parsing", spec.Name))
	}
	if spec.Name == "" {
		panic("flag defined without a name")
	}
	for _, n := range []string{spec.Name, spec.Alias} {
		if n == "" {
			continue
		}
		if r.flagSet.Lookup(n) != nil {
			panic(fmt.Sprintf("flag with name '%s' already registered", n))
		}
	}
	if spec.Default == cty.NilVal {
		spec.Default = cty.NullVal(spec.Kind.Type())
	}
	if !spec.Default.Type().Equals(spec.Kind.Type()) {
		panic(fmt.Sprintf("flag '%s': default of type %s does not match kind %s",
			spec.Name, spec.Default.Type().FriendlyName(), spec.Kind))
	}
	if spec.Kind == KindInt && !spec.Default.IsNull() && !spec.Default.AsBigFloat().IsInt() {
		panic(fmt.Sprintf("flag '%s': integer flag has non-integer default", spec.Name))
	}

	slog.Debug("Registering flag.", "name", spec.Name, "alias", spec.Alias, "kind", spec.Kind.String())
	s := spec
	r.specs[s.Name] = &s
	r.order = append(r.order, s.Name)
	r.values[s.Name] = s.Default

	value := &flagValue{r: r, name: s.Name}
	r.flagSet.Var(value, s.Name, s.Help)
	if s.Alias != "" {
		r.aliases[s.Alias] = s.Name
		r.flagSet.Var(value, s.Alias, s.Help)
	}
}

// DefineString registers a string flag.
func (r *Registry) DefineString(name, alias, def, help string) {
	r.Define(FlagSpec{Name: name, Alias: alias, Kind: KindString, Help: help, Default: cty.StringVal(def)})
}

// DefineOptionalString registers a string flag with no default.
func (r *Registry) DefineOptionalString(name, alias, help string) {
	r.Define(FlagSpec{Name: name, Alias: alias, Kind: KindString, Help: help})
}

// DefineInt registers an integer flag.
func (r *Registry) DefineInt(name, alias string, def int, help string) {
	r.Define(FlagSpec{Name: name, Alias: alias, Kind: KindInt, Help: help, Default: cty.NumberIntVal(int64(def))})
}

// DefineOptionalInt registers an integer flag with no default.
func (r *Registry) DefineOptionalInt(name, alias, help string) {
	r.Define(FlagSpec{Name: name, Alias: alias, Kind: KindInt, Help: help})
}

// DefineFloat registers a float flag.
func (r *Registry) DefineFloat(name, alias string, def float64, help string) {
	r.Define(FlagSpec{Name: name, Alias: alias, Kind: KindFloat, Help: help, Default: cty.NumberFloatVal(def)})
}

// DefineOptionalFloat registers a float flag with no default.
func (r *Registry) DefineOptionalFloat(name, alias, help string) {
	r.Define(FlagSpec{Name: name, Alias: alias, Kind: KindFloat, Help: help})
}

// DefineBool registers a boolean flag. Passing the flag without a value sets it.
func (r *Registry) DefineBool(name, alias string, def bool, help string) {
	r.Define(FlagSpec{Name: name, Alias: alias, Kind: KindBool, Help: help, Default: cty.BoolVal(def)})
}

// DefineList registers a comma separated list flag.
func (r *Registry) DefineList(name, alias string, def []string, help string) {
	r.Define(FlagSpec{Name: name, Alias: alias, Kind: KindList, Help: help, Default: listVal(def)})
}

// MarkRequired makes Parse fail unless the flag holds a non-null value.
func (r *Registry) MarkRequired(name string) {
	r.mustSpec(name)
	r.required = append(r.required, name)
}

// IsDefined reports whether a flag with this name exists.
func (r *Registry) IsDefined(name string) bool {
	_, ok := r.specs[name]
	return ok
}

// Spec returns a copy of the flag's definition.
func (r *Registry) Spec(name string) FlagSpec {
	return *r.mustSpec(name)
}

// Names returns every defined flag name in definition order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) mustSpec(name string) *FlagSpec {
	s, ok := r.specs[name]
	if !ok {
		panic(fmt.Sprintf("flag '%s' is not defined", name))
	}
	return s
}

// lookup resolves a flag by name or alias.
func (r *Registry) lookup(nameOrAlias string) (*FlagSpec, bool) {
	if s, ok := r.specs[nameOrAlias]; ok {
		return s, true
	}
	if name, ok := r.aliases[nameOrAlias]; ok {
		return r.specs[name], true
	}
	return nil, false
}
