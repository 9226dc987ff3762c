package config

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// Pool sizing shared by all three adapters.
const (
	maxOpenConns      = 50
	minIdleConns      = 2
	connMaxLifetime   = time.Hour
	connMaxIdleTime   = 5 * time.Minute
	healthCheckPeriod = time.Minute
	connectTimeout    = 5 * time.Second
)

// PostgresPGXPoolConfig creates a pgxpool.Config for the database at dsn.
func PostgresPGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = maxOpenConns
	poolConfig.MinConns = minIdleConns
	poolConfig.MaxConnLifetime = connMaxLifetime
	poolConfig.MaxConnIdleTime = connMaxIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	return poolConfig, nil
}

// PostgresSQLDB opens and pings a *sql.DB for the database at dsn.
func PostgresSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err = tuneAndPing(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

// PostgresSQLX opens and pings a *sqlx.DB for the database at dsn.
func PostgresSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err = tuneAndPing(ctx, db.DB); err != nil {
		return nil, err
	}

	return db, nil
}

func tuneAndPing(ctx context.Context, db *sql.DB) error {
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(minIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return err
	}

	return nil
}
