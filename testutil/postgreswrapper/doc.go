// Package postgreswrapper provides a test-only abstraction over the three supported database adapters.
//
// The adapter is chosen with the ADAPTER_TYPE environment variable (pgx.pool, sql.db, sqlx.db; pgx.pool by default).
// Creating a wrapper applies the embedded migrations, takes a database-wide advisory lock so that test packages
// running in parallel do not interfere, and truncates all tables. Tests are skipped when the test database
// is unreachable.
//
// Usage:
//
//	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
//	defer wrapper.Close()
//	store := wrapper.GetStore()
package postgreswrapper
