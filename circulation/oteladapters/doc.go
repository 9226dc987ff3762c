// Package oteladapters implements the observability interfaces of the circulation package
// on OpenTelemetry: metrics on the metric API, spans on the trace API, and contextual logging
// either through the otelslog bridge or the log API directly.
package oteladapters
