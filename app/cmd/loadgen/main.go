// Command loadgen drives concurrent checkouts and returns against the circulation store and,
// when stopped, checks that the stock of every material still reconciles with its open loans.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell/config"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine/migrations"
)

const (
	defaultRate       = 50
	defaultPersons    = 40
	defaultMaterials  = 20
	defaultStock      = 3
	defaultCapacity   = 4
	defaultReturnRate = 40 // percent of requests that return a loan
)

// Config holds the command line settings of the load generator.
type Config struct {
	Rate          int
	Persons       int
	Materials     int
	StockPerTitle int
	Capacity      int
	ReturnPercent int
	Duration      time.Duration
}

func main() {
	cfg := parseFlags()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	dsn := config.Load().DatabaseURL

	if err := migrations.Up(dsn); err != nil {
		logger.Error("migrations failed", "error", err.Error())
		os.Exit(1)
	}

	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		logger.Error("invalid database url", "error", err.Error())
		os.Exit(1)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("connecting failed", "error", err.Error())
		os.Exit(1)
	}
	defer pool.Close()

	store, err := postgresengine.NewStoreFromPGXPool(pool)
	if err != nil {
		logger.Error("creating store failed", "error", err.Error())
		os.Exit(1)
	}

	generator := NewLoadGenerator(store, cfg, logger)

	if err := generator.Seed(ctx); err != nil {
		logger.Error("seeding failed", "error", err.Error())
		os.Exit(1)
	}

	generator.Run(ctx)

	verifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := generator.Verify(verifyCtx); err != nil {
		logger.Error("stock does not reconcile", "error", err.Error())
		os.Exit(1)
	}
}

func parseFlags() Config {
	var (
		rate       = flag.Int("rate", defaultRate, "Requests per second")
		persons    = flag.Int("persons", defaultPersons, "Number of borrowers to register")
		materials  = flag.Int("materials", defaultMaterials, "Number of titles to register")
		stock      = flag.Int("stock", defaultStock, "Units per title")
		capacity   = flag.Int("capacity", defaultCapacity, "Open loans allowed per borrower")
		returnRate = flag.Int("return-percent", defaultReturnRate, "Share of requests that return a loan, 0-100")
		duration   = flag.Duration("duration", 0, "Stop after this long, 0 runs until interrupted")
	)

	flag.Parse()

	return Config{
		Rate:          max(*rate, 1),
		Persons:       max(*persons, 1),
		Materials:     max(*materials, 1),
		StockPerTitle: max(*stock, 0),
		Capacity:      max(*capacity, 0),
		ReturnPercent: min(max(*returnRate, 0), 100),
		Duration:      *duration,
	}
}
