// Package conventions holds the shared style rules for flag help text so that
// every catalog renders its help messages and choice lists the same way.
package conventions

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/mitchellh/go-wordwrap"
)

// HelpWidth is the column at which help paragraphs are wrapped.
const HelpWidth = 80

const continuationIndent = "  "

// HelpWrap wraps every paragraph of text at HelpWidth columns and indents the
// continuation lines. Lines that already start with whitespace are kept
// verbatim so that hand-aligned tables survive the wrap.
func HelpWrap(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" || strings.TrimLeft(line, " \t") != line {
			out = append(out, strings.TrimRight(line, " "))
			continue
		}
		wrapped := wordwrap.WrapString(line, HelpWidth-uint(len(continuationIndent)))
		out = append(out, strings.ReplaceAll(wrapped, "\n", "\n"+continuationIndent))
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// ChoicesString renders a list of legal values for inclusion in help text.
func ChoicesString[T any](choices []T) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = fmt.Sprint(c)
	}
	return "Choices: " + strings.Join(parts, ", ")
}

// Suggest returns the candidate closest to value, or "" if none is close
// enough to be a plausible typo.
func Suggest(value string, candidates []string) string {
	if value == "" {
		return ""
	}
	best, bestDist := "", -1
	lower := strings.ToLower(value)
	for _, c := range candidates {
		d := levenshtein.Distance(lower, strings.ToLower(c), nil)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := len(value) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}

// DidYouMean formats a suggestion suffix for error messages, or "" when
// there is nothing to suggest.
func DidYouMean(value string, candidates []string) string {
	if s := Suggest(value, candidates); s != "" {
		return fmt.Sprintf(" (did you mean %q?)", s)
	}
	return ""
}
