// Package postgresengine provides the PostgreSQL implementation of the circulation catalog,
// loan ledger, query views and circulation journal.
//
// It supports three database adapters (pgx pool, database/sql, sqlx). Every write that must be
// atomic runs in one read-committed transaction. Checkout and return are conditional updates:
// when a concurrent write changed the state a decision was based on, no row is affected and
// circulation.ErrConcurrencyConflict is returned so the caller can reload and decide again.
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(
//		pool,
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	state, _ := store.LoadCheckoutState(ctx, personID, materialID)
//	loan, err := store.OpenLoan(ctx, state, time.Now(), entry)
//
// Catalog listings honor circulation.WithEventualConsistency and are then served by the read replica
// configured with NewStoreFromPGXPoolWithReplica. Loan views always read from the primary.
package postgresengine
