package domain

import "fmt"

// BattingHeader is the column header of every batting summary table.
var BattingHeader = []string{"Batsman", "Runs", "Balls Faced", "4s", "6s", "Strike Rate"}

// BattingLine holds one batter's figures for an inning.
// Wicket deliveries are excluded from every count.
type BattingLine struct {
	Batter string `json:"batter" csv:"Batsman"`
	Runs   int    `json:"runs" csv:"Runs"`
	Balls  int    `json:"balls" csv:"Balls Faced"`
	Fours  int    `json:"fours" csv:"4s"`
	Sixes  int    `json:"sixes" csv:"6s"`
}

// StrikeRate returns runs per 100 balls faced, or 0 when no balls were faced.
func (b BattingLine) StrikeRate() float64 {
	if b.Balls == 0 {
		return 0
	}
	return float64(b.Runs) / float64(b.Balls) * 100
}

// FormattedStrikeRate renders the strike rate with two decimals, e.g. "366.67".
func (b BattingLine) FormattedStrikeRate() string {
	return fmt.Sprintf("%.2f", b.StrikeRate())
}

// Row returns the line as table cells in BattingHeader order.
func (b BattingLine) Row() []string {
	return []string{
		b.Batter,
		fmt.Sprintf("%d", b.Runs),
		fmt.Sprintf("%d", b.Balls),
		fmt.Sprintf("%d", b.Fours),
		fmt.Sprintf("%d", b.Sixes),
		b.FormattedStrikeRate(),
	}
}

// InningTotals are the informational totals of an inning.
type InningTotals struct {
	Inning  int `json:"inning"`
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
}

// InningSummary is the batting table of one inning.
type InningSummary struct {
	Inning int           `json:"inning"`
	Totals InningTotals  `json:"totals"`
	Lines  []BattingLine `json:"lines"`
}

// MatchSummary is the batting summary document of one match.
type MatchSummary struct {
	MatchNo int             `json:"match_no"`
	Innings []InningSummary `json:"innings"`
}
