package adapters

import (
	"context"
	"database/sql"
)

// stdRows wraps standard library sql.Rows to implement DBRows interface.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps standard library sql.Result to implement DBResult interface.
type stdResult struct {
	result sql.Result
}

func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}

// stdConn is what *sql.DB, *sql.Tx, *sqlx.DB and *sqlx.Tx have in common.
type stdConn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func stdQuery(ctx context.Context, conn stdConn, query string) (DBRows, error) {
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func stdExec(ctx context.Context, conn stdConn, query string) (DBResult, error) {
	result, err := conn.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

// stdTx wraps a standard library transaction. The context arguments of Commit and Rollback are unused
// because database/sql binds the transaction to the context it was started with.
type stdTx struct {
	tx interface {
		stdConn
		Commit() error
		Rollback() error
	}
}

func (s *stdTx) Query(ctx context.Context, query string) (DBRows, error) {
	return stdQuery(ctx, s.tx, query)
}

func (s *stdTx) Exec(ctx context.Context, query string) (DBResult, error) {
	return stdExec(ctx, s.tx, query)
}

func (s *stdTx) Commit(_ context.Context) error {
	return s.tx.Commit()
}

func (s *stdTx) Rollback(_ context.Context) error {
	return s.tx.Rollback()
}
