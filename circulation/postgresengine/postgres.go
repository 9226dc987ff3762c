package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/bibliotecago/library-circulation-go/circulation"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	logMsgBuildQueryFailed    = "failed to build sql query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database statement execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgRollbackFailed      = "failed to roll back transaction"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "circulation operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrDurationMS         = "duration_ms"
	logAttrRowsAffected       = "rows_affected"
	logAttrRowCount           = "row_count"
	logAttrPersonID           = "person_id"
	logAttrMaterialID         = "material_id"
	logAttrLoanID             = "loan_id"
	logAttrOperation          = "operation"
)

// Store is the PostgreSQL implementation of the circulation catalog, loan ledger, query views and journal.
// It works on top of one of three database adapters (pgx pool, database/sql, sqlx) and optionally
// routes eventually consistent reads to a read replica.
type Store struct {
	db               adapters.DBAdapter
	logger           circulation.Logger
	metricsCollector circulation.MetricsCollector
	tracingCollector circulation.TracingCollector
	contextualLogger circulation.ContextualLogger
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolWithReplica creates a new Store that writes to the primary pool and serves
// reads carrying circulation.EventualConsistency from the replica pool.
func NewStoreFromPGXPoolWithReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if primary == nil {
		return Store{}, circulation.ErrNilDatabaseConnection
	}

	if replica == nil {
		return Store{}, circulation.ErrNilReplicaConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	s := Store{db: db}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// Ping verifies the connection to the primary database.
func (s Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// withinTx runs fn inside a read-committed transaction and commits when fn returns nil.
// Rollback runs detached from ctx so a cancelled caller never leaves a transaction half-applied.
func (s *Store) withinTx(ctx context.Context, fn func(tx adapters.DBTx) error) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return errors.Join(circulation.ErrBeginningTxFailed, err)
	}

	if err = fn(tx); err != nil {
		s.rollback(ctx, tx)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		s.rollback(ctx, tx)
		return errors.Join(circulation.ErrCommittingTxFailed, err)
	}

	return nil
}

func (s *Store) rollback(ctx context.Context, tx adapters.DBTx) {
	err := tx.Rollback(context.WithoutCancel(ctx))
	if err == nil || errors.Is(err, sql.ErrTxDone) || errors.Is(err, pgx.ErrTxClosed) {
		return
	}

	s.logWarn(ctx, logMsgRollbackFailed, logAttrError, err.Error())
}

// query builds and runs a select (or a write with RETURNING) and scans every row with scan.
// The rows are fully consumed and closed before it returns, so the next statement may use the same tx.
func query[T any](
	ctx context.Context,
	s *Store,
	q adapters.Querier,
	action string,
	builder interface{ ToSQL() (string, []any, error) },
	scan func(row adapters.DBRows) (T, error),
) ([]T, error) {

	sqlQuery, _, buildErr := builder.ToSQL()
	if buildErr != nil {
		s.logErrorCtx(ctx, logMsgBuildQueryFailed, buildErr, logAttrOperation, action)
		return nil, errors.Join(circulation.ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()

	rows, queryErr := q.Query(ctx, sqlQuery)
	if queryErr != nil {
		s.logErrorCtx(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(circulation.ErrQueryingFailed, queryErr)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logErrorCtx(ctx, logMsgCloseRowsFailed, closeErr)
		}
	}()

	var result []T

	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			return nil, errors.Join(circulation.ErrScanningDBRowFailed, scanErr)
		}

		result = append(result, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		s.logErrorCtx(ctx, logMsgDBQueryFailed, rowsErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(circulation.ErrQueryingFailed, rowsErr)
	}

	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	return result, nil
}

// queryOne is query for statements that yield at most one row. found is false when there was none.
func queryOne[T any](
	ctx context.Context,
	s *Store,
	q adapters.Querier,
	action string,
	builder interface{ ToSQL() (string, []any, error) },
	scan func(row adapters.DBRows) (T, error),
) (item T, found bool, err error) {

	items, err := query(ctx, s, q, action, builder, scan)
	if err != nil || len(items) == 0 {
		return item, false, err
	}

	return items[0], true, nil
}

// exec builds and runs a statement without result rows and returns the number of affected rows.
func (s *Store) exec(
	ctx context.Context,
	q adapters.Querier,
	action string,
	builder interface{ ToSQL() (string, []any, error) },
) (int64, error) {

	sqlQuery, _, buildErr := builder.ToSQL()
	if buildErr != nil {
		s.logErrorCtx(ctx, logMsgBuildQueryFailed, buildErr, logAttrOperation, action)
		return 0, errors.Join(circulation.ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()

	result, execErr := q.Exec(ctx, sqlQuery)
	if execErr != nil {
		s.logErrorCtx(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, errors.Join(circulation.ErrWritingFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logErrorCtx(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, errors.Join(circulation.ErrGettingRowsAffected, rowsAffectedErr)
	}

	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	return rowsAffected, nil
}

// count runs a "SELECT COUNT(*)" style statement.
func (s *Store) count(
	ctx context.Context,
	q adapters.Querier,
	action string,
	builder interface{ ToSQL() (string, []any, error) },
) (int, error) {

	n, _, err := queryOne(ctx, s, q, action, builder, func(row adapters.DBRows) (int, error) {
		var c int
		err := row.Scan(&c)
		return c, err
	})

	return n, err
}

func dialect() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}
