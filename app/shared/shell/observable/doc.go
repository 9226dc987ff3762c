// Package observable decorates the core command and query handlers of the feature slices with
// metrics, tracing and logging, so the handlers stay free of observability concerns.
package observable
