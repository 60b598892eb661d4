package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/smooks-go/cdrl/internal/app"
	"github.com/smooks-go/cdrl/internal/cli"
)

// main is the entrypoint for the cdrl CLI.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and
// error handling.
func run(outW io.Writer, args []string) (err error) {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// NewApp panics on critical startup errors (a malformed configuration
	// document); recover here so the caller sees a plain error instead of
	// a crash.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	cdrlApp := app.NewApp(outW, cfg)
	return cdrlApp.Run(context.Background(), cfg)
}
