package cli

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/trainflags/internal/catalog"
	"github.com/specialistvlad/trainflags/internal/core"
	"github.com/specialistvlad/trainflags/internal/registry"
)

// Program is the name shown in usage output.
const Program = "trainflags-demo"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Config is everything the demo program needs after parsing.
type Config struct {
	Settings  *core.Settings
	LogFormat string
	LogLevel  string
}

// NewRegistry builds the demo program's registry: the base, performance and
// image catalogs with their key flags adopted, plus the logging flags.
func NewRegistry(output io.Writer) *registry.Registry {
	r := registry.New(Program, output)
	core.DefineBase(r, catalog.AllBase())
	core.DefinePerformance(r, catalog.AllPerformance())
	core.DefineImage(r, catalog.AllImage())
	r.AdoptModuleKeyFlags(core.Module)

	r.DefineString("log-format", "", "json", "Log output format. Options: 'text' or 'json'.")
	r.DefineString("log-level", "", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	r.DeclareKeyFlag(Program, "log-format", "log-level")
	return r
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	slog.Debug("CLI parser started.")
	r := NewRegistry(output)

	if err := r.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(r.String("log-format"))
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(r.String("log-level"))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	settings, err := core.Load(r)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "dtype", settings.Dtype.String())
	return &Config{
		Settings:  settings,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	}, false, nil
}
