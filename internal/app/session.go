package app

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	apperrors "cricketcli/internal/errors"
	"cricketcli/internal/infrastructure"
	"cricketcli/internal/services"
	"cricketcli/internal/store"
	"cricketcli/internal/validation"
	"cricketcli/pkg/contracts/domain"
)

// Dashboard is the operation surface the menu drives
type Dashboard interface {
	MatchNo() int
	Manhattan(ctx context.Context, inning int) (*services.ManhattanResult, error)
	Worm(ctx context.Context, inning int) (*services.WormResult, error)
	RunRate(ctx context.Context, inning int) (*services.RunRateResult, error)
	Summary(ctx context.Context) (*services.SummaryResult, error)
	Dump(ctx context.Context) (*store.Dump, error)
}

// Session is one interactive menu conversation. Menu text goes to out;
// diagnostics go to the logger.
type Session struct {
	dashboard Dashboard
	in        *bufio.Scanner
	out       io.Writer
	metrics   *infrastructure.Metrics
	logger    *slog.Logger
}

// NewSession creates a session reading selections from in
func NewSession(dashboard Dashboard, in io.Reader, out io.Writer, metrics *infrastructure.Metrics, logger *slog.Logger) *Session {
	return &Session{
		dashboard: dashboard,
		in:        bufio.NewScanner(in),
		out:       out,
		metrics:   metrics,
		logger:    infrastructure.WithComponent(logger, "session"),
	}
}

// PromptMatchNumber asks for the match number until a valid one is entered.
// It returns io.EOF when input ends first.
func (s *Session) PromptMatchNumber(ctx context.Context) (int, error) {
	for {
		line, ok := s.prompt("Enter match number: ")
		if !ok {
			return 0, io.EOF
		}
		n, err := validation.ParseMatchNumber(line)
		if err != nil {
			s.reject(ctx, "match", err)
			continue
		}
		return n, nil
	}
}

// Run shows the menu until the user exits or input ends. Validation errors are
// reported and the menu is shown again; any other error ends the session.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.printMenu()
		line, ok := s.prompt("Enter your choice: ")
		if !ok {
			fmt.Fprintln(s.out)
			s.logger.InfoContext(ctx, "Input closed, leaving menu")
			return nil
		}

		choice, err := validation.ParseMenuChoice(line)
		if err != nil {
			s.reject(ctx, "menu", err)
			continue
		}
		if choice == validation.ChoiceExit {
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		inning := 0
		if choice.NeedsInning() {
			var ok bool
			if inning, ok = s.promptInning(ctx); !ok {
				fmt.Fprintln(s.out)
				return nil
			}
		}

		// each selection is traced on its own
		opCtx := infrastructure.ContextWithTraceID(ctx)
		s.logger.InfoContext(opCtx, "Menu selection",
			slog.String("choice", choice.String()),
			slog.Int("inning", inning))

		if err := s.dispatch(opCtx, choice, inning); err != nil {
			if apperrors.IsRecoverable(err) {
				s.reject(opCtx, choice.String(), err)
				continue
			}
			return err
		}
	}
}

func (s *Session) printMenu() {
	fmt.Fprintf(s.out, "\nMatch %d Dashboard\n", s.dashboard.MatchNo())
	fmt.Fprintln(s.out, "1. Manhattan chart")
	fmt.Fprintln(s.out, "2. Worm chart")
	fmt.Fprintln(s.out, "3. Run rate chart")
	fmt.Fprintln(s.out, "4. Batting summary")
	fmt.Fprintln(s.out, "5. Exit")
	fmt.Fprintln(s.out, "6. Dump stored rows")
}

// promptInning asks until 1 or 2 is entered; ok is false when input ends
func (s *Session) promptInning(ctx context.Context) (int, bool) {
	for {
		line, ok := s.prompt("Enter inning number (1 or 2): ")
		if !ok {
			return 0, false
		}
		inning, err := validation.ParseInning(line)
		if err != nil {
			s.reject(ctx, "inning", err)
			continue
		}
		return inning, true
	}
}

func (s *Session) dispatch(ctx context.Context, choice validation.MenuChoice, inning int) error {
	switch choice {
	case validation.ChoiceManhattan:
		result, err := s.dashboard.Manhattan(ctx, inning)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Manhattan chart written to %s\n", result.Artifact.Workbook)
		fmt.Fprintf(s.out, "Inning %d: %d runs, %d wickets across %d overs\n",
			inning, result.Series.TotalRuns(), len(result.Series.WicketOvers), len(result.Series.Overs))

	case validation.ChoiceWorm:
		result, err := s.dashboard.Worm(ctx, inning)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Worm chart written to %s\n", result.Artifact.Workbook)
		if n := len(result.Series.Points); n > 0 {
			last := result.Series.Points[n-1]
			fmt.Fprintf(s.out, "Inning %d: %d runs after over %d\n", inning, last.Runs, last.Over)
		} else {
			fmt.Fprintf(s.out, "Inning %d has no deliveries\n", inning)
		}

	case validation.ChoiceRunRate:
		result, err := s.dashboard.RunRate(ctx, inning)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Run rate chart written to %s\n", result.Artifact.Workbook)
		fmt.Fprintf(s.out, "Inning %d: %d deliveries, moving average window %d\n",
			inning, len(result.Smoothed.Points), result.Smoothed.Window)

	case validation.ChoiceSummary:
		result, err := s.dashboard.Summary(ctx)
		if err != nil {
			return err
		}
		s.printSummary(result)

	case validation.ChoiceDump:
		dump, err := s.dashboard.Dump(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, strings.Join(dump.Columns, "\t"))
		for _, row := range dump.Rows {
			fmt.Fprintln(s.out, strings.Join(row, "\t"))
		}
	}
	return nil
}

func (s *Session) printSummary(result *services.SummaryResult) {
	for _, inning := range result.Summary.Innings {
		fmt.Fprintf(s.out, "\nInning %d\n", inning.Inning)
		tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(domain.BattingHeader, "\t"))
		for _, line := range inning.Lines {
			fmt.Fprintln(tw, strings.Join(line.Row(), "\t"))
		}
		tw.Flush()
	}
	fmt.Fprintf(s.out, "\nBatting summary written to %s\n", result.Artifact.Workbook)
}

// prompt writes label and reads one line; ok is false at end of input
func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// reject reports a recoverable error to the user
func (s *Session) reject(ctx context.Context, kind string, err error) {
	s.metrics.RecordInvalidInput(ctx, kind)
	infrastructure.WithError(s.logger, err).WarnContext(ctx, "Input rejected",
		slog.String("kind", kind))

	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		fmt.Fprintln(s.out, appErr.Message)
		return
	}
	fmt.Fprintln(s.out, err.Error())
}
