package registry

import (
	"fmt"
	"io"
	"strings"
)

// PrintUsage writes the program's short help: its key flags only.
func (r *Registry) PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage of %s:\n", r.program)
	keys := r.KeyFlags(r.program)
	if len(keys) == 0 {
		fmt.Fprintf(w, "\n  No key flags declared.\n")
	}
	for _, name := range keys {
		r.writeFlag(w, r.specs[name])
	}
	fmt.Fprintf(w, "\nTry --%s to see help for every flag.\n", HelpFullFlag)
}

// PrintUsageFull writes help for every defined flag, key flags first.
func (r *Registry) PrintUsageFull(w io.Writer) {
	fmt.Fprintf(w, "Usage of %s:\n", r.program)
	keys := r.keyFlags[r.program]
	for _, name := range keys.Names() {
		r.writeFlag(w, r.specs[name])
	}
	var rest []string
	for _, name := range r.order {
		if !keys.Contains(name) {
			rest = append(rest, name)
		}
	}
	if len(rest) > 0 {
		fmt.Fprintf(w, "\nOther flags:\n")
		for _, name := range rest {
			r.writeFlag(w, r.specs[name])
		}
	}
	fmt.Fprintf(w, "\nBuilt-in flags:\n")
	fmt.Fprintf(w, "\n  --%s:\n    Load flag values from an HCL file of name = value attributes.\n", FlagFileFlag)
	fmt.Fprintf(w, "\n  --%s:\n    Show help for every defined flag.\n", HelpFullFlag)
}

func (r *Registry) writeFlag(w io.Writer, spec *FlagSpec) {
	header := "--" + spec.Name
	if spec.Alias != "" {
		header += ", -" + spec.Alias
	}
	fmt.Fprintf(w, "\n  %s:\n", header)
	for _, line := range strings.Split(spec.Help, "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
	if spec.Default.IsNull() {
		fmt.Fprintf(w, "    (%s; no default)\n", withArticle(spec.Kind.String()))
		return
	}
	fmt.Fprintf(w, "    (%s; default: '%s')\n", withArticle(spec.Kind.String()), formatValue(spec.Default))
}

func withArticle(noun string) string {
	if strings.ContainsRune("aeiou", rune(noun[0])) {
		return "an " + noun
	}
	return "a " + noun
}
