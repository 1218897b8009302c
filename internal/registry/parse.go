package registry

import (
	"flag"
	"fmt"
	"log/slog"
)

// Parse reads args, loads any flag files they name, and validates the result.
// Help requests print usage and return flag.ErrHelp. It panics if called twice.
func (r *Registry) Parse(args []string) error {
	if r.parsed {
		panic(fmt.Sprintf("registry '%s' parsed twice", r.program))
	}
	r.parsed = true
	slog.Debug("Parsing flags.", "program", r.program, "args", len(args))

	if err := r.flagSet.Parse(args); err != nil {
		return err
	}
	if r.helpFull {
		r.PrintUsageFull(r.output)
		return flag.ErrHelp
	}
	return r.validate()
}

// Parsed reports whether Parse has run.
func (r *Registry) Parsed() bool {
	return r.parsed
}

// Args returns the positional arguments left after parsing.
func (r *Registry) Args() []string {
	return r.flagSet.Args()
}
