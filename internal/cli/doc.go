// Package cli is responsible for parsing command-line arguments of the demo
// program, validating user input, and handling process-level concerns like
// exit codes. It composes the flag catalogs into one registry, adopts their
// key flags and translates the parsed values into a Config.
package cli
