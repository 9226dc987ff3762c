package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell/config"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine/migrations"
)

const (
	typePGXPool = config.AdapterPGXPool
	typeSQLDB   = config.AdapterSQLDB
	typeSQLXDB  = config.AdapterSQLXDB

	testLockKey = 727274

	truncateAll = "TRUNCATE TABLE circulation_journal, loans, materials, persons, material_types, roles RESTART IDENTITY"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// Wrapper interface to abstract over different adapter types.
type Wrapper interface {
	GetStore() postgresengine.Store
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing.
type PGXPoolWrapper struct {
	lock
	pool  *pgxpool.Pool
	store postgresengine.Store
}

func (w *PGXPoolWrapper) GetStore() postgresengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
	w.release()
}

// SQLDBWrapper wraps sql.DB-based testing.
type SQLDBWrapper struct {
	lock
	db    *sql.DB
	store postgresengine.Store
}

func (w *SQLDBWrapper) GetStore() postgresengine.Store {
	return w.store
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
	w.release()
}

// SQLXWrapper wraps sqlx.DB-based testing.
type SQLXWrapper struct {
	lock
	db    *sqlx.DB
	store postgresengine.Store
}

func (w *SQLXWrapper) GetStore() postgresengine.Store {
	return w.store
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
	w.release()
}

// CreateWrapperWithTestConfig creates the wrapper selected by ADAPTER_TYPE, with the given store options,
// on a migrated and empty test database. It skips the test when the database is unreachable.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	dsn := config.PostgresTestDSN()

	migrateOnce.Do(func() {
		migrateErr = migrations.Up(dsn)
	})

	if migrateErr != nil {
		t.Skipf("test database is not available: %v", migrateErr)
	}

	l := acquire(t, dsn)
	ctx := context.Background()

	switch adapterType := strings.ToLower(os.Getenv("ADAPTER_TYPE")); adapterType {
	case typePGXPool, "":
		poolConfig, err := config.PostgresPGXPoolConfig(dsn)
		require.NoError(t, err, "error creating pool config in test setup")

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		require.NoError(t, err, "error connecting to DB pool in test setup")

		store, err := postgresengine.NewStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating store")

		return &PGXPoolWrapper{lock: l, pool: pool, store: store}

	case typeSQLDB:
		db, err := config.PostgresSQLDB(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating store")

		return &SQLDBWrapper{lock: l, db: db, store: store}

	case typeSQLXDB:
		db, err := config.PostgresSQLX(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating store")

		return &SQLXWrapper{lock: l, db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterType))
	}
}

// CleanUp truncates all circulation tables.
func CleanUp(t testing.TB, wrapper Wrapper) {
	t.Helper()

	ExecSQL(t, wrapper, truncateAll)
}

// ExecSQL runs a raw statement against the test database, for arranging states the store refuses to create.
func ExecSQL(t testing.TB, wrapper Wrapper, statement string) {
	t.Helper()

	var err error

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err = w.pool.Exec(context.Background(), statement)
	case *SQLDBWrapper:
		_, err = w.db.Exec(statement)
	case *SQLXWrapper:
		_, err = w.db.Exec(statement)
	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}

	require.NoError(t, err, "error executing sql in test")
}

// QueryInt runs a raw single-value query against the test database.
func QueryInt(t testing.TB, wrapper Wrapper, statement string) int64 {
	t.Helper()

	var (
		value int64
		err   error
	)

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		err = w.pool.QueryRow(context.Background(), statement).Scan(&value)
	case *SQLDBWrapper:
		err = w.db.QueryRow(statement).Scan(&value)
	case *SQLXWrapper:
		err = w.db.QueryRow(statement).Scan(&value)
	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}

	require.NoError(t, err, "error querying in test")

	return value
}

// lock holds a session-level advisory lock that serializes database tests across test binaries.
type lock struct {
	db   *sql.DB
	conn *sql.Conn
}

func acquire(t testing.TB, dsn string) lock {
	t.Helper()

	ctx := context.Background()

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "error opening lock connection")

	conn, err := db.Conn(ctx)
	require.NoError(t, err, "error opening lock connection")

	_, err = conn.ExecContext(ctx, fmt.Sprintf("SELECT pg_advisory_lock(%d)", testLockKey))
	require.NoError(t, err, "error acquiring test lock")

	_, err = conn.ExecContext(ctx, truncateAll)
	require.NoError(t, err, "error truncating tables")

	return lock{db: db, conn: conn}
}

func (l lock) release() {
	ctx := context.Background()
	_, _ = l.conn.ExecContext(ctx, fmt.Sprintf("SELECT pg_advisory_unlock(%d)", testLockKey))
	_ = l.conn.Close()
	_ = l.db.Close()
}
