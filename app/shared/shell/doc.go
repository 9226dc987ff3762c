// Package shell is the imperative shell around the pure core: it retries optimistic-concurrency
// conflicts, turns domain events into circulation journal entries, defines the handler contracts
// of the feature slices, and provides the observability helpers the handler wrappers use.
//
// In Hexagonal Architecture terminology this is the infrastructure layer of the application.
package shell
