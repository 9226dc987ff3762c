// Package fixtures provides Given* helpers that arrange catalog records and loans through the store.
package fixtures
