// Package hooks is the registry of training hooks that the --hooks flag can
// select. It maps short aliases to display names, renders the alias table used
// in help text and resolves user input to canonical hook names.
package hooks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/trainflags/internal/conventions"
)

const (
	LoggingTensorHook     = "LoggingTensorHook"
	ProfilerHook          = "ProfilerHook"
	ExamplesPerSecondHook = "ExamplesPerSecondHook"
	LoggingMetricHook     = "LoggingMetricHook"
)

// Aliases maps each abbreviation to the hook's display name.
var Aliases = map[string]string{
	"lt":  LoggingTensorHook,
	"p":   ProfilerHook,
	"eps": ExamplesPerSecondHook,
	"lm":  LoggingMetricHook,
}

// sortedAliases returns the abbreviations ordered by display name.
func sortedAliases() []string {
	keys := make([]string, 0, len(Aliases))
	for k := range Aliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return Aliases[keys[i]] < Aliases[keys[j]] })
	return keys
}

// Names returns every known hook display name, sorted.
func Names() []string {
	names := make([]string, 0, len(Aliases))
	for _, k := range sortedAliases() {
		names = append(names, Aliases[k])
	}
	return names
}

// Table renders the hook/abbreviation summary shown in the --hooks help.
func Table() string {
	padLen := 0
	for _, name := range Aliases {
		if len(name) > padLen {
			padLen = len(name)
		}
	}
	padLen += 6

	var b strings.Builder
	fmt.Fprintf(&b, "  %-*sAbbreviation", padLen, "Hook")
	for _, k := range sortedAliases() {
		fmt.Fprintf(&b, "\n    %-*s(%s)", padLen, Aliases[k], k)
	}
	return b.String()
}

// Lookup resolves a single hook name or alias, ignoring case.
func Lookup(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if display, ok := Aliases[key]; ok {
		return display, true
	}
	for _, display := range Aliases {
		if strings.ToLower(display) == key {
			return display, true
		}
	}
	return "", false
}

// Resolve canonicalises a list of hook names or aliases. Empty entries are
// skipped and duplicates collapse to their first occurrence.
func Resolve(names []string) ([]string, error) {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		display, ok := Lookup(n)
		if !ok {
			candidates := append(Names(), sortedAliases()...)
			return nil, fmt.Errorf("unrecognized training hook %q%s", n, conventions.DidYouMean(n, candidates))
		}
		if seen[display] {
			continue
		}
		seen[display] = true
		out = append(out, display)
	}
	return out, nil
}
