// Package app wires the dashboard together and runs the interactive menu.
//
// NewApplication loads configuration, resolves paths, then initializes the
// JSON logger, telemetry providers, the delivery store and the match service.
// Stop releases them in reverse order.
//
// A typical command:
//
//	a, err := app.NewApplication(ctx, app.Options{})
//	if err != nil { ... }
//	defer a.Stop(ctx)
//
//	if err := a.Ingest(ctx, matchNo); err != nil { ... }
//	err = app.NewSession(a.Service, os.Stdin, os.Stdout, a.Metrics, a.Logger).Run(ctx)
//
// Session prints menu text to its writer and keeps logging separate. Input
// that fails validation is reported and the menu is shown again; storage or
// rendering failures end the session with an error.
package app
