package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell/config"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine"
)

// openStore connects with the configured adapter. Only the pgx pool adapter supports a read replica.
func openStore(ctx context.Context, cfg config.Server, options []postgresengine.Option) (postgresengine.Store, func(), error) {
	switch cfg.AdapterType {
	case config.AdapterPGXPool:
		primary, err := connectPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return postgresengine.Store{}, nil, err
		}

		if cfg.DatabaseReplicaURL == "" {
			store, err := postgresengine.NewStoreFromPGXPool(primary, options...)
			if err != nil {
				primary.Close()
				return postgresengine.Store{}, nil, err
			}

			return store, primary.Close, nil
		}

		replica, err := connectPool(ctx, cfg.DatabaseReplicaURL)
		if err != nil {
			primary.Close()
			return postgresengine.Store{}, nil, err
		}

		closeAll := func() {
			replica.Close()
			primary.Close()
		}

		store, err := postgresengine.NewStoreFromPGXPoolWithReplica(primary, replica, options...)
		if err != nil {
			closeAll()
			return postgresengine.Store{}, nil, err
		}

		return store, closeAll, nil

	case config.AdapterSQLDB:
		db, err := config.PostgresSQLDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return postgresengine.Store{}, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return postgresengine.Store{}, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case config.AdapterSQLXDB:
		db, err := config.PostgresSQLX(ctx, cfg.DatabaseURL)
		if err != nil {
			return postgresengine.Store{}, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return postgresengine.Store{}, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	default:
		return postgresengine.Store{}, nil, fmt.Errorf("unsupported ADAPTER_TYPE %q", cfg.AdapterType)
	}
}

func connectPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
