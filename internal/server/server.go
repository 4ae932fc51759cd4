// Package server exposes the family graph over a read-only HTTP API.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aerugo/ancestral-vision/internal/server/middleware"
	"github.com/aerugo/ancestral-vision/internal/setup"
	"github.com/aerugo/ancestral-vision/internal/util"
	"github.com/aerugo/ancestral-vision/pkg/logger"
	pgstore "github.com/aerugo/ancestral-vision/pkg/store/pgx"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := setup.OpenDatabase(ctx)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer pool.Close()

	if err := pgstore.Migrate(util.GetEnv("DATABASE_URL")); err != nil {
		logger.Fatal("Failed to run migrations", "err", err)
	}

	// The search route embeds the query text; everything else is pure
	// store reads, so a missing oracle only disables search.
	oracle, err := setup.NewOracleFromEnv()
	if err != nil {
		logger.Warn("Oracle unavailable, similarity search disabled", "err", err)
		oracle = nil
	}

	app := &middleware.App{
		Store:  pgstore.NewFamilyDBStore(pool),
		Oracle: oracle,
	}

	e.Use(middleware.AppContextMiddleware(app))
	e.Use(echomw.CORS())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
