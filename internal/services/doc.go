// Package services implements the operation surface of the dashboard.
// Both the interactive menu and the batch report generator drive the same
// MatchService, so every operation behaves identically in either mode.
//
// # Architecture
//
// MatchService owns the state of one session: the match number and the
// delivery table loaded at startup. It composes:
//
//	1. dataprocessing.DeliveryParser for reading the input file
//	2. a MatchStore for the relational copy of the table
//	3. dataprocessing aggregations for Manhattan, Worm and run rate series
//	4. exporter chart and summary writers for the output files
//
// # Common Service Pattern
//
//	svc := services.NewMatchService(services.Dependencies{
//	    Store:   st,
//	    Paths:   paths,
//	    Match:   cfg.Match,
//	    Tracer:  providers.Tracer,
//	    Metrics: metrics,
//	    Logger:  logger,
//	})
//	if _, err := svc.Ingest(ctx, paths.InputFile, 10); err != nil {
//	    return err
//	}
//	result, err := svc.Manhattan(ctx, 1)
//
// # Observability
//
// Every operation runs inside its own span and records its duration on the
// operation histogram. Failures are recorded on the span and returned as
// application errors.
package services
