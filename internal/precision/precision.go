// Package precision enumerates the numeric precisions a training run can
// select and the default loss scale that goes with each.
package precision

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/trainflags/internal/conventions"
)

// Precision is the numeric representation used for training calculations.
type Precision int

const (
	FP32 Precision = iota
	FP16
)

// Entry is one row of the precision table.
type Entry struct {
	Precision        Precision
	DefaultLossScale float64
}

var table = map[string]Entry{
	"fp16": {Precision: FP16, DefaultLossScale: 128},
	"fp32": {Precision: FP32, DefaultLossScale: 1},
}

// Labels returns the accepted precision labels in sorted order.
func Labels() []string {
	labels := make([]string, 0, len(table))
	for l := range table {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Lookup returns the table entry for label.
func Lookup(label string) (Entry, bool) {
	e, ok := table[label]
	return e, ok
}

// Parse converts a label such as "fp16" to its Precision.
func Parse(label string) (Precision, error) {
	e, ok := table[label]
	if !ok {
		return 0, fmt.Errorf("unsupported dtype %q%s", label, conventions.DidYouMean(label, Labels()))
	}
	return e.Precision, nil
}

// String returns the precision's label.
func (p Precision) String() string {
	for l, e := range table {
		if e.Precision == p {
			return l
		}
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}
