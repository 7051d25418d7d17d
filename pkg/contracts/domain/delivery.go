package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Delivery represents one ball bowled in a match.
// A delivery is identified by (MatchNo, Inning, Over, Ball); within an inning
// deliveries are ordered by Over then Ball.
type Delivery struct {
	// Seq is the 1-based position of the row in the source file.
	// It preserves the original ordering for whole-innings run rate and batting order.
	Seq int `json:"seq" csv:"seq" db:"seq" validate:"min=1"`

	// MatchNo is stamped on every row at ingestion time and never read from the file.
	MatchNo int `json:"match_no" csv:"match_no" db:"match_no" validate:"min=0"`

	// Inning is 1 or 2; a match has exactly two.
	Inning int `json:"inningno" csv:"inningno" db:"inningno" validate:"oneof=1 2"`

	// Over is the integer over ordinal. Source values such as "3.0" are truncated at parse time.
	Over int `json:"over" csv:"over" db:"over" validate:"min=0"`

	Ball   int    `json:"ballnumber" csv:"ballnumber" db:"ballnumber" validate:"min=0"`
	Batter string `json:"batter" csv:"batter" db:"batter" validate:"required,max=128"`

	// Score is the runs credited off the ball, 0 to 6.
	Score int `json:"score" csv:"score" db:"score" validate:"min=0,max=6"`

	Outcome Outcome `json:"outcome" csv:"outcome" db:"outcome"`
}

// Key returns the natural key of the delivery inside its match.
func (d Delivery) Key() DeliveryKey {
	return DeliveryKey{Inning: d.Inning, Over: d.Over, Ball: d.Ball}
}

// IsWicket reports whether the delivery dismissed the batter.
func (d Delivery) IsWicket() bool {
	return d.Outcome.IsWicket()
}

// DeliveryKey identifies a delivery within one match.
type DeliveryKey struct {
	Inning int
	Over   int
	Ball   int
}

// String formats the key as inning/over.ball, e.g. "1/3.4".
func (k DeliveryKey) String() string {
	return fmt.Sprintf("%d/%d.%d", k.Inning, k.Over, k.Ball)
}

// OutcomeKind discriminates the Outcome variant.
type OutcomeKind int

const (
	// OutcomeRuns means the ball produced runs (possibly zero).
	OutcomeRuns OutcomeKind = iota
	// OutcomeWicket means the ball produced a dismissal.
	OutcomeWicket
)

// WicketMarker is the literal used for wickets in source files and in the store.
const WicketMarker = "w"

// Outcome is the categorical result of a delivery: Runs(n) or Wicket.
type Outcome struct {
	Kind OutcomeKind
	Runs int
}

// RunsOutcome builds a Runs(n) outcome.
func RunsOutcome(n int) Outcome {
	return Outcome{Kind: OutcomeRuns, Runs: n}
}

// WicketOutcome builds the Wicket outcome.
func WicketOutcome() Outcome {
	return Outcome{Kind: OutcomeWicket}
}

// IsWicket reports whether the outcome is the wicket variant.
func (o Outcome) IsWicket() bool {
	return o.Kind == OutcomeWicket
}

// String renders the outcome in its storage form: "w" or the run count.
func (o Outcome) String() string {
	if o.IsWicket() {
		return WicketMarker
	}
	return strconv.Itoa(o.Runs)
}

// MarshalText implements encoding.TextMarshaler so outcomes round-trip through JSON and CSV.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseOutcome converts a raw outcome cell into an Outcome.
// "w" (any case) is a wicket; integral numbers (including "1.0") are runs.
func ParseOutcome(raw string) (Outcome, error) {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, WicketMarker) {
		return WicketOutcome(), nil
	}
	if s == "" {
		return Outcome{}, fmt.Errorf("empty outcome")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return Outcome{}, fmt.Errorf("negative outcome %q", raw)
		}
		return RunsOutcome(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != float64(int(f)) {
		return Outcome{}, fmt.Errorf("invalid outcome %q", raw)
	}
	return RunsOutcome(int(f)), nil
}
