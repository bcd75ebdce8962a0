// Package store is the client's local SQLite database: the persisted session
// cookie and a small read-only cache of recent analyses shown when the
// backend is unreachable.
package store

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/newsscope/newsscope/internal/client/store/migrations"

	_ "modernc.org/sqlite"
)

type Store struct {
	db       *sql.DB
	Metadata *MetadataRepository
	Analyses *AnalysisCache
}

// Open opens (creating if needed) the store at dsn and runs migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		db:       db,
		Metadata: NewMetadataRepository(db),
		Analyses: NewAnalysisCache(db),
	}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *Store) Close() error {
	return s.db.Close()
}
