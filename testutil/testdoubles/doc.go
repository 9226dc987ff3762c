// Package testdoubles provides spies for the observability interfaces of the circulation package
// and a slog.Handler spy, used by the store, the command and query wrappers, and the HTTP API tests.
package testdoubles
