// Package server provides the admin HTTP server for the governance
// layer.
//
// # Overview
//
// The admin server is an operational surface only: it exposes process
// health on /healthz, the month-to-date budget picture on /status, and
// Prometheus metrics on /metrics. Provider traffic never passes through
// it; application code calls the governed client as a library.
//
// # Thread Safety
//
// Server is safe for concurrent use. Start blocks until shutdown;
// Shutdown may be called from any goroutine and is idempotent.
package server
