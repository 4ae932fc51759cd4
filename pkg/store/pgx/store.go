// Package pgx implements store.FamilyStore on PostgreSQL with pgvector
// for biography similarity search.
package pgx

import (
	"context"
	"embed"
	"errors"
	"strings"

	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// FamilyDBStore implements store.FamilyStore against a pgx connection
// pool. The connection must have pgvector types registered.
//
// A FamilyDBStore should be created using NewFamilyDBStore.
type FamilyDBStore struct {
	conn pgxIConn
}

// NewFamilyDBStore creates a store using an existing connection or pool.
func NewFamilyDBStore(conn pgxIConn) *FamilyDBStore {
	return &FamilyDBStore{conn: conn}
}

// Migrate applies the embedded schema migrations to the database at
// databaseURL.
func Migrate(databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	url := databaseURL
	if after, ok := strings.CutPrefix(url, "postgres://"); ok {
		url = "pgx5://" + after
	} else if after, ok := strings.CutPrefix(url, "postgresql://"); ok {
		url = "pgx5://" + after
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// WithTx runs fn with a store bound to a single database transaction.
// The transaction is rolled back when fn returns an error.
func (s *FamilyDBStore) WithTx(ctx context.Context, fn func(tx store.FamilyStore) error) error {
	dbTx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer dbTx.Rollback(ctx)

	if err := fn(&FamilyDBStore{conn: dbTx}); err != nil {
		return err
	}
	return dbTx.Commit(ctx)
}
