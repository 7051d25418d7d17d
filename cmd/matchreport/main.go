package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cricketcli/internal/app"
	apperrors "cricketcli/internal/errors"
	"cricketcli/internal/exporter"
	"cricketcli/internal/infrastructure"
	"cricketcli/internal/services"
)

var innings = []int{1, 2}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run ingests one match and renders every chart for both innings plus the
// batting summary without prompting
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("matchreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	matchNo := fs.Int("match", -1, "match number to stamp on every ingested row")
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

	n, ok := application.ResolveMatchNumber(*matchNo)
	if !ok {
		fmt.Fprintln(stderr, "A match number is required: pass -match or set match.number")
		return apperrors.ExitConfig
	}

	if err := application.Ingest(ctx, n); err != nil {
		fmt.Fprintf(stderr, "Failed to load %s: %v\n", application.Paths.InputFile, err)
		return apperrors.ExitCode(err)
	}

	artifacts, err := renderAll(ctx, application.Service)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Report generation failed",
			slog.Int("match_no", n))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}

	for _, a := range artifacts {
		fmt.Fprintln(stdout, a.Workbook)
		for _, csvPath := range a.CSV {
			fmt.Fprintln(stdout, csvPath)
		}
	}
	logger.InfoContext(ctx, "Match report complete",
		slog.Int("match_no", n),
		slog.Int("workbooks", len(artifacts)))
	return apperrors.ExitOK
}

func renderAll(ctx context.Context, svc *services.MatchService) ([]*exporter.Artifact, error) {
	var artifacts []*exporter.Artifact
	for _, inning := range innings {
		manhattan, err := svc.Manhattan(ctx, inning)
		if err != nil {
			return nil, err
		}
		worm, err := svc.Worm(ctx, inning)
		if err != nil {
			return nil, err
		}
		runRate, err := svc.RunRate(ctx, inning)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, manhattan.Artifact, worm.Artifact, runRate.Artifact)
	}

	summary, err := svc.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return append(artifacts, summary.Artifact), nil
}
