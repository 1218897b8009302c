package catalog

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/trainflags/internal/conventions"
	"github.com/specialistvlad/trainflags/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// FooChoices lists the legal --foo values.
var FooChoices = []string{"fizz", "bang"}

// BarChoices maps each --foo value to the --bar values it accepts.
var BarChoices = map[string][]int{
	"fizz": {1, 2, 3},
	"bang": {4, 5, 6},
}

// ExampleToggles selects which example flags to define.
type ExampleToggles struct {
	Foo bool
	Bar bool
}

// AllExample enables every example flag.
func AllExample() ExampleToggles {
	return ExampleToggles{Foo: true, Bar: true}
}

// DefineExample shows how a catalog is written: --foo validates against a
// fixed set and --bar validates against the value chosen for --foo.
// Requesting Bar without Foo is a programming error and panics.
func DefineExample(r *registry.Registry, t ExampleToggles) []string {
	var keyFlags []string

	if t.Foo {
		r.DefineString("foo", "f", "fizz", conventions.HelpWrap(
			"A flag of no particular note\n"+conventions.ChoicesString(FooChoices)))
		r.AddValidator(oneOf("foo", FooChoices, false))
		keyFlags = append(keyFlags, "foo")
	}

	if t.Bar {
		if !t.Foo {
			panic("bar depends on foo")
		}
		r.DefineOptionalInt("bar", "b", conventions.HelpWrap(fmt.Sprintf(
			"Specify a number to go along with --foo.\n"+
				"  if --foo=fizz:\n    %s\n"+
				"  if --foo=bang:\n    %s",
			conventions.ChoicesString(BarChoices["fizz"]),
			conventions.ChoicesString(BarChoices["bang"]))))
		r.MarkRequired("bar")
		r.AddValidator(registry.NewMultiValidator([]string{"foo", "bar"}, checkBar))
		keyFlags = append(keyFlags, "bar")
	}

	return keyFlags
}

func checkBar(values map[string]cty.Value) registry.Result {
	foo, bar := values["foo"], values["bar"]
	if bar.IsNull() {
		// Reported by the required check.
		return registry.Pass()
	}
	if foo.IsNull() {
		return registry.Fail("--bar requires --foo to be set")
	}
	n, _ := bar.AsBigFloat().Int64()
	choices, ok := BarChoices[foo.AsString()]
	if !ok {
		return registry.Fail("--bar cannot be checked against unknown --foo '%s'", foo.AsString())
	}
	if !slices.Contains(choices, int(n)) {
		return registry.Fail("--bar=%d is not valid with --foo=%s; %s", n, foo.AsString(), conventions.ChoicesString(choices))
	}
	return registry.Pass()
}
