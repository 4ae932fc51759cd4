package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aerugo/ancestral-vision/internal/setup"
	"github.com/aerugo/ancestral-vision/internal/util"
	"github.com/aerugo/ancestral-vision/pkg/leaselock"
	"github.com/aerugo/ancestral-vision/pkg/logger"
	"github.com/aerugo/ancestral-vision/pkg/logger/console"
	pgstore "github.com/aerugo/ancestral-vision/pkg/store/pgx"
	"github.com/aerugo/ancestral-vision/pkg/tree"
)

// growLockKey is the lease key serializing growers per database.
const growLockKey = "tree-grower"

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := setup.OpenDatabase(ctx)
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer pool.Close()

	if err := pgstore.Migrate(util.GetEnv("DATABASE_URL")); err != nil {
		logger.Fatal("Failed to run migrations", "err", err)
	}

	oracle, err := setup.NewOracleFromEnv()
	if err != nil {
		logger.Fatal("Failed to create oracle client", "err", err)
	}

	engine := tree.NewEngine(tree.NewEngineParams{
		Store:   pgstore.NewFamilyDBStore(pool),
		Oracle:  oracle,
		Limiter: setup.NewLimiterFromEnv(),
		Config: tree.Config{
			MaxCorrectionAttempts: util.GetEnvInt("AV_CORRECTION_ATTEMPTS", 0),
			FireProbability:       util.GetEnvFloat("AV_FIRE_PROBABILITY", 0),
			BiographyWordCount:    util.GetEnvInt("AV_BIOGRAPHY_WORDS", 0),
		},
	})

	cycles := util.GetEnvInt("AV_CYCLES", 0)
	if cycles > 0 {
		logger.Info("Starting growth loop", "cycles", cycles)
	} else {
		logger.Info("Starting growth loop until interrupted")
	}

	locks := leaselock.New(pool)
	err = locks.WithLease(ctx, growLockKey, 2*time.Minute, func(ctx context.Context) error {
		return engine.Run(ctx, cycles)
	})
	switch {
	case errors.Is(err, leaselock.ErrBusy):
		logger.Fatal("Another grower already holds the lease for this database")
	case errors.Is(err, context.Canceled):
		logger.Info("Shutdown signal received, exiting")
	case err != nil:
		logger.Fatal("Growth loop failed", "err", err)
	default:
		logger.Info("Growth loop finished")
	}
}
