// Package dataprocessing turns ball-by-ball delivery files into match statistics.
// It covers parsing and every aggregation the dashboard draws from.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Parser: reads CSV or XLSX delivery files into validated deliveries
// 2. Aggregations: Manhattan, Worm and run rate series computed in memory
// 3. Summarizer: batting tables built from grouped store queries
//
// # Usage
//
//	parser := dataprocessing.NewDeliveryParser(logger)
//	deliveries, err := parser.ParseFile("data/ipl.csv")
//	if err != nil {
//	    return err
//	}
//	deliveries = dataprocessing.StampMatch(deliveries, 10)
//
//	manhattan := dataprocessing.Manhattan(deliveries, 10, 1, 20)
//	worm := dataprocessing.Worm(deliveries, 10, 1)
//	rate := dataprocessing.SmoothedRunRate(deliveries, 10, 1, 5)
//
// # Fill Policies
//
// The Manhattan series is zero-filled over the fixed over range. The Worm
// series is sparse: overs absent from the data do not appear. Derived series
// are never cached; every call recomputes from the deliveries it is given.
//
// # Error Handling
//
// Parse failures are returned as PARSING application errors carrying the
// offending line in their context. Aggregations cannot fail.
package dataprocessing
