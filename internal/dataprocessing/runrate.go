package dataprocessing

import (
	"cricketcli/pkg/contracts/domain"
)

// InningsRunRate computes the conventional run rate after every delivery:
// cumulative runs over cumulative balls, times six, accumulated per inning
// across the whole table in file order. The result is aligned with deliveries.
func InningsRunRate(deliveries []domain.Delivery) []domain.RunRatePoint {
	runs := make(map[int]int)
	balls := make(map[int]int)

	points := make([]domain.RunRatePoint, len(deliveries))
	for i, d := range deliveries {
		runs[d.Inning] += d.Score
		balls[d.Inning]++
		points[i] = domain.RunRatePoint{
			Inning: d.Inning,
			Over:   d.Over,
			Ball:   d.Ball,
			Rate:   float64(runs[d.Inning]) / float64(balls[d.Inning]) * 6,
		}
	}
	return points
}

// SmoothedRunRate computes the per-over run rate of one (match, inning) and
// smooths it with a centered moving average of the given window.
//
// Deliveries are ordered by (over, ball). The running runs and ball count
// restart at every over, so each value is the rate within the current over
// only, unlike InningsRunRate. The output has one point per delivery.
func SmoothedRunRate(deliveries []domain.Delivery, matchNo, inning, window int) domain.RunRateSeries {
	sorted := sortByOverBall(FilterInning(deliveries, matchNo, inning))

	rates := make([]float64, len(sorted))
	localRuns, localBalls, currentOver := 0, 0, 0
	for i, d := range sorted {
		if i == 0 || d.Over != currentOver {
			currentOver = d.Over
			localRuns, localBalls = 0, 0
		}
		localRuns += d.Score
		localBalls++
		rates[i] = float64(localRuns) / (float64(localBalls) / 6)
	}

	smoothed := CenteredMovingAverage(rates, window)

	series := domain.RunRateSeries{
		MatchNo: matchNo,
		Inning:  inning,
		Window:  window,
		Points:  make([]domain.RunRatePoint, len(sorted)),
	}
	for i, d := range sorted {
		series.Points[i] = domain.RunRatePoint{
			Inning: d.Inning,
			Over:   d.Over,
			Ball:   d.Ball,
			Rate:   smoothed[i],
		}
	}
	return series
}

// CenteredMovingAverage returns the mean of a centered window around each value.
//
// Position i averages values[end-window+1 : end+1] where end = i + (window-1)/2,
// clipped to the slice, so edges average fewer samples instead of being dropped.
// The output has the same length as the input. A window below 1 is treated as 1.
func CenteredMovingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}

	n := len(values)
	out := make([]float64, n)
	for i := range values {
		end := i + (window-1)/2
		start := end - window + 1
		if start < 0 {
			start = 0
		}
		if end > n-1 {
			end = n - 1
		}

		sum := 0.0
		for _, v := range values[start : end+1] {
			sum += v
		}
		out[i] = sum / float64(end-start+1)
	}
	return out
}
