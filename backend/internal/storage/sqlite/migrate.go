package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/kopdar-dev/kopdar/shared/logger"
)

// applyMigrations brings the schema up to the newest embedded migration.
// Versions already recorded in goose_db_version are skipped.
func applyMigrations(ctx context.Context, db *sql.DB, migrationFS fs.FS) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrationFS)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log := logger.For("storage.sqlite")
	for _, res := range results {
		log.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}
