// Package catalog defines the themed groups of training flags: base, performance,
// image/misc and a worked example. Each Define function takes a toggle struct
// with one switch per flag, registers the enabled flags with their validators
// and returns the names that should be treated as key flags.
package catalog
