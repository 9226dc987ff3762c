package adapters

import "context"

// Querier is the part shared by a connection pool and a transaction.
type Querier interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBAdapter defines the interface for database operations needed by the circulation store.
type DBAdapter interface {
	Querier
	BeginTx(ctx context.Context) (DBTx, error)
	Ping(ctx context.Context) error
}

// DBTx is an open transaction. Reads inside a transaction always go to the primary.
type DBTx interface {
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
