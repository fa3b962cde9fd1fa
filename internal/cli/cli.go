package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/buildcfg/internal/app"
	"github.com/vk/buildcfg/internal/config"
	"github.com/vk/buildcfg/internal/report"
)

// Process exit codes.
const (
	ExitFailure     = 1
	ExitUsage       = 2
	ExitConfigError = 3
	ExitCycleError  = 4
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ToExitError maps an error returned by the application to the exit code
// the process should terminate with.
func ToExitError(err error) *ExitError {
	var exitErr *ExitError
	var cfgErr *config.ConfigError
	var cycleErr *config.CycleError
	switch {
	case errors.As(err, &exitErr):
		return exitErr
	case errors.As(err, &cycleErr):
		return &ExitError{Code: ExitCycleError, Message: err.Error()}
	case errors.As(err, &cfgErr):
		return &ExitError{Code: ExitConfigError, Message: err.Error()}
	default:
		return &ExitError{Code: ExitFailure, Message: err.Error()}
	}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("buildcfg", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
buildcfg - resolves a declarative project build configuration.

Usage:
  buildcfg [options] CONFIG_PATH

Arguments:
  CONFIG_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Exit codes:
  0 success, 2 usage error, 3 configuration error, 4 evaluation order cycle.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the configuration file or directory.")
	cFlag := flagSet.String("c", "", "Path to the configuration file or directory (shorthand).")
	cleanFlag := flagSet.Bool("clean", false, "Delete the root build directory after loading.")
	outputFlag := flagSet.String("output", "", "Write the resolved configuration to this file instead of stdout.")
	oFlag := flagSet.String("o", "", "Write the resolved configuration to this file (shorthand).")
	formatFlag := flagSet.String("format", "yaml", "Output format. Options: 'yaml' or 'json'.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// flag stops at the first positional argument, so anything after the
	// path, including flags, ends up here.
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{
			Code:    ExitUsage,
			Message: fmt.Sprintf("unexpected arguments after %q: %s (options must precede CONFIG_PATH)", flagSet.Arg(0), strings.Join(flagSet.Args()[1:], " ")),
		}
	}

	path := firstNonEmpty(*configFlag, *cFlag)
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		slog.Debug("No configuration path provided, printing usage.")
		flagSet.Usage()
		return nil, false, &ExitError{Code: ExitUsage, Message: "a configuration path is required"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPath: path,
		OutputPath: firstNonEmpty(*outputFlag, *oFlag),
		Format:     format,
		Clean:      *cleanFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
