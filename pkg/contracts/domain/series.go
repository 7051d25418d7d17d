package domain

// ChartKind names a chart the dashboard can render.
type ChartKind string

const (
	ChartManhattan ChartKind = "manhattan"
	ChartWorm      ChartKind = "worm"
	ChartRunRate   ChartKind = "runrate"
)

// ManhattanSeries is the per-over runs and wickets of one inning over a fixed over range.
//
// Overs, Runs and Wickets are aligned: Runs[i] and Wickets[i] belong to Overs[i].
// Their length always equals the configured over range, regardless of how many
// overs appear in the data. Missing overs are zero-filled.
//
// WicketOvers lists the raw over of every wicket delivery in delivery order.
// Several wickets in one over repeat that over, so their markers overlap.
type ManhattanSeries struct {
	MatchNo     int   `json:"match_no"`
	Inning      int   `json:"inning"`
	Overs       []int `json:"overs"`
	Runs        []int `json:"runs"`
	Wickets     []int `json:"wickets"`
	WicketOvers []int `json:"wicket_overs"`
}

// TotalRuns returns the runs summed across the over range.
func (m ManhattanSeries) TotalRuns() int {
	total := 0
	for _, r := range m.Runs {
		total += r
	}
	return total
}

// OverTotal is one point of the worm: the cumulative runs after Over.
type OverTotal struct {
	Over int `json:"over" csv:"over"`
	Runs int `json:"runs" csv:"cumulative_runs"`
}

// WormSeries is the cumulative run progression of one inning.
// Only overs present in the data appear; absent overs are omitted, not carried forward.
type WormSeries struct {
	MatchNo int         `json:"match_no"`
	Inning  int         `json:"inning"`
	Points  []OverTotal `json:"points"`
}

// Final returns the last cumulative value, which equals the inning's total runs.
func (w WormSeries) Final() int {
	if len(w.Points) == 0 {
		return 0
	}
	return w.Points[len(w.Points)-1].Runs
}

// RunRatePoint is one per-delivery run rate value.
type RunRatePoint struct {
	Inning int     `json:"inning" csv:"inning"`
	Over   int     `json:"over" csv:"over"`
	Ball   int     `json:"ball" csv:"ball"`
	Rate   float64 `json:"rate" csv:"rate"`
}

// RunRateSeries is the smoothed per-over run rate of one inning,
// one point per delivery in (over, ball) order.
type RunRateSeries struct {
	MatchNo int            `json:"match_no"`
	Inning  int            `json:"inning"`
	Window  int            `json:"window"`
	Points  []RunRatePoint `json:"points"`
}
