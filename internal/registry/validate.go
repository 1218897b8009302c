package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Result is the outcome of one validator. The zero Result is a rejection.
type Result struct {
	OK      bool
	Message string
}

// Pass accepts the checked values.
func Pass() Result {
	return Result{OK: true}
}

// Fail rejects the checked values with a formatted message.
func Fail(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// Check inspects the parsed values of the flags a validator names.
type Check func(values map[string]cty.Value) Result

// Validator is run once after parsing over the values of Flags.
type Validator struct {
	Flags []string
	Check Check
}

// NewValidator builds a validator over a single flag.
func NewValidator(name string, check func(value cty.Value) Result) Validator {
	return Validator{
		Flags: []string{name},
		Check: func(values map[string]cty.Value) Result { return check(values[name]) },
	}
}

// NewMultiValidator builds a validator over several flags at once.
func NewMultiValidator(names []string, check Check) Validator {
	return Validator{Flags: append([]string(nil), names...), Check: check}
}

// AddValidator registers v. It panics if v names an undefined flag.
func (r *Registry) AddValidator(v Validator) {
	if len(v.Flags) == 0 || v.Check == nil {
		panic("validator must name at least one flag and provide a check")
	}
	for _, n := range v.Flags {
		r.mustSpec(n)
	}
	r.validators = append(r.validators, v)
}

// Failure records one rejected validator or missing required flag.
type Failure struct {
	Flags   []string
	Message string
}

// ValidationError aggregates every failure found after parsing.
type ValidationError struct {
	Failures []Failure
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		lines[i] = fmt.Sprintf("%s: %s", flagList(f.Flags), f.Message)
	}
	return fmt.Sprintf("flag validation failed:\n- %s", strings.Join(lines, "\n- "))
}

// HasFailure reports whether any failure involves the named flag.
func (e *ValidationError) HasFailure(name string) bool {
	for _, f := range e.Failures {
		for _, n := range f.Flags {
			if n == name {
				return true
			}
		}
	}
	return false
}

func flagList(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "--" + n
	}
	return strings.Join(parts, ", ")
}

// validate checks required flags and then runs every validator in
// registration order.
func (r *Registry) validate() error {
	var failures []Failure

	for _, name := range r.required {
		if r.values[name].IsNull() {
			failures = append(failures, Failure{
				Flags:   []string{name},
				Message: "flag must have a value",
			})
		}
	}

	for _, v := range r.validators {
		res := v.Check(r.Values(v.Flags...))
		if res.OK {
			continue
		}
		msg := res.Message
		if msg == "" {
			msg = fmt.Sprintf("invalid value for %s", describe(r.Values(v.Flags...)))
		}
		failures = append(failures, Failure{Flags: v.Flags, Message: msg})
	}

	if len(failures) > 0 {
		slog.Debug("Flag validation failed.", "failures", len(failures))
		return &ValidationError{Failures: failures}
	}
	slog.Debug("Flag validation passed.", "validators", len(r.validators))
	return nil
}

func describe(values map[string]cty.Value) string {
	var parts []string
	for name, v := range values {
		if v.IsNull() {
			parts = append(parts, name+"=<unset>")
			continue
		}
		parts = append(parts, name+"="+formatValue(v))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
