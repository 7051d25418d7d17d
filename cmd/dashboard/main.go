package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cricketcli/internal/app"
	apperrors "cricketcli/internal/errors"
	"cricketcli/internal/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process exit, reading menu input from stdin
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	matchNo := fs.Int("match", -1, "match number to stamp on every ingested row (asks when unset)")
	input := fs.String("input", "", "ball-by-ball CSV file (defaults to data/ipl.csv relative to executable)")
	configFile := fs.String("config", "", "config file (defaults to config.yaml search)")
	if err := fs.Parse(args); err != nil {
		return apperrors.ExitConfig
	}
	ctx = infrastructure.EnsureTraceID(ctx)

	application, err := app.NewApplication(ctx, app.Options{
		ConfigFile: *configFile,
		InputFile:  *input,
		Console:    stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return apperrors.ExitCode(err)
	}
	defer application.Stop(context.Background())

	logger := application.Logger
	session := app.NewSession(application.Service, stdin, stdout, application.Metrics, logger)

	n, ok := application.ResolveMatchNumber(*matchNo)
	if !ok {
		n, err = session.PromptMatchNumber(ctx)
		if errors.Is(err, io.EOF) {
			logger.InfoContext(ctx, "No match number entered")
			return apperrors.ExitOK
		}
		if err != nil {
			return apperrors.ExitCode(err)
		}
	}

	if err := application.Ingest(ctx, n); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Ingestion failed",
			slog.Int("match_no", n),
			slog.String("input_file", application.Paths.InputFile))
		fmt.Fprintf(stderr, "Failed to load %s: %v\n", application.Paths.InputFile, err)
		return apperrors.ExitCode(err)
	}

	if err := session.Run(ctx); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Dashboard stopped on error")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitOK
}
