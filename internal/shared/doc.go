// Package shared holds helpers used across packages that belong to no single
// layer.
//
// The testutil subpackage is imported only from tests. It provides input and
// config fixtures written to a test's temp dir, and a capturing slog handler
// for asserting on structured log output:
//
//	logger, logs := testutil.NewTestLogger(t)
//	svc := services.NewMatchService(services.Dependencies{Logger: logger, ...})
//	...
//	testutil.AssertLogged(t, logs, slog.LevelInfo, "Match ingested")
package shared
