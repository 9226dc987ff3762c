// Package circulation provides the core types and abstractions of the library circulation engine.
//
// It defines the records held by the catalog (Role, MaterialType, Person, Material), the Loan ledger records,
// the read models returned by the query views, the journal entries written alongside stock-affecting changes,
// and the sentinel errors every storage implementation returns.
//
// The package is storage-agnostic. The PostgreSQL implementation lives in the postgresengine sub-package,
// OpenTelemetry adapters for the observability interfaces live in oteladapters.
//
// Common usage pattern:
//
//	state, err := store.LoadCheckoutState(ctx, personID, materialID)
//	if err != nil {
//		// handle error
//	}
//
//	// decide on the loaded state, then write conditionally
//	loan, err := store.OpenLoan(ctx, state, loanedAt, entry)
//	if errors.Is(err, circulation.ErrConcurrencyConflict) {
//		// reload and decide again
//	}
package circulation
