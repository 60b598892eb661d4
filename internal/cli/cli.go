package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/smooks-go/cdrl/internal/app"
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

// Parse processes command-line arguments for the "run" subcommand. It
// returns a populated app.Config, a boolean indicating if the program
// should exit cleanly (e.g. -h was given), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	if len(args) == 0 {
		printUsage(output)
		return nil, true, nil
	}
	if args[0] != "run" {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown subcommand %q, expected \"run\"", args[0])}
	}
	args = args[1:]

	flagSet := flag.NewFlagSet("cdrl run", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() { printUsage(output) }

	profileFlag := flagSet.String("profile", "", "Base profile[,sub-profile,...] the runtime is built for. Resource-configs are not filtered by target-profile.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	readerPoolFlag := flagSet.Int("reader-pool-size", 4, "Number of pooled readers to build for this profile.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() < 2 {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "expected <config.cdrl> and <input.xml> arguments"}
	}
	configPath := flagSet.Arg(0)
	inputPath := flagSet.Arg(1)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		ConfigPath:     configPath,
		InputPath:      inputPath,
		Profile:        *profileFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
		ReaderPoolSize: *readerPoolFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

func printUsage(output io.Writer) {
	fmt.Fprint(output, `
cdrl - a streaming content-delivery filter engine.

Usage:
  cdrl run <config.cdrl> <input.xml> [options]

Arguments:
  config.cdrl
    Path to the root content-delivery resource-list document.
  input.xml
    Path to the XML document to filter.

Options:
  -profile string
    Base profile[,sub-profile,...] the runtime is built for. Resource-configs are not filtered by target-profile.
  -log-format string
    Log output format. Options: 'text' or 'json'. (default "text")
  -log-level string
    Set the logging level. Options: 'debug', 'info', 'warn', 'error'. (default "info")
  -reader-pool-size int
    Number of pooled readers to build for this profile. (default 4)
`)
}
