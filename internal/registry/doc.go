// Package registry is the flag engine that every catalog registers against.
//
// A Registry owns one flag.FlagSet together with the typed definitions, the
// parsed values, the validators and the key-flag sets of a single program.
// Nothing is process-global: tests and tools can build as many independent
// registries as they need.
//
// The lifecycle is strictly two-phase. During registration catalogs call the
// Define* methods, attach validators and declare key flags; any mistake here
// (a duplicate name, a validator over an undefined flag) is a programming
// error and panics immediately. Parse then runs exactly once: it reads the
// command line (and any --flagfile it names), checks required flags and runs
// every validator, returning a *ValidationError that lists each failure.
//
// Values are stored as cty.Value so that a flag without a default is simply a
// null of the flag's type, and so that values loaded from an HCL flag file go
// through the same type conversion rules as the rest of the HCL ecosystem.
package registry
