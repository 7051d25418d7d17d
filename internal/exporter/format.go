package exporter

import (
	"strconv"

	"cricketcli/pkg/contracts/domain"
)

// formatFloat formats a rate with exactly 2 decimal places, so 13.4 appears as 13.40
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

// ManhattanRecords flattens a Manhattan series into over, runs, wickets rows
func ManhattanRecords(s domain.ManhattanSeries) ([]string, [][]string) {
	records := make([][]string, len(s.Overs))
	for i, over := range s.Overs {
		records[i] = []string{formatInt(over), formatInt(s.Runs[i]), formatInt(s.Wickets[i])}
	}
	return []string{"Over", "Runs", "Wickets"}, records
}

// WormRecords flattens a Worm series into over, cumulative runs rows
func WormRecords(s domain.WormSeries) ([]string, [][]string) {
	records := make([][]string, len(s.Points))
	for i, p := range s.Points {
		records[i] = []string{formatInt(p.Over), formatInt(p.Runs)}
	}
	return []string{"Over", "Cumulative Runs"}, records
}

// RunRateRecords flattens a smoothed run rate series, one row per delivery
func RunRateRecords(s domain.RunRateSeries) ([]string, [][]string) {
	records := make([][]string, len(s.Points))
	for i, p := range s.Points {
		records[i] = []string{formatInt(p.Over), formatInt(p.Ball), formatFloat(p.Rate)}
	}
	return []string{"Over", "Ball", "Run Rate"}, records
}

// BattingRecords renders batting lines with the summary header
func BattingRecords(lines []domain.BattingLine) ([]string, [][]string) {
	records := make([][]string, len(lines))
	for i, line := range lines {
		records[i] = line.Row()
	}
	return domain.BattingHeader, records
}
