package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/kopdar-dev/kopdar/shared/config"
	"github.com/kopdar-dev/kopdar/shared/logger"
	sharedpg "github.com/kopdar-dev/kopdar/shared/storage/pg"
	"github.com/lib/pq"
)

//go:embed migrations/init.sql
var schema string

type Storage struct {
	db  *sql.DB
	now func() time.Time
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	log := logger.For("storage.pg")
	log.Info("connecting to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg.Private.Pg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	s := &Storage{db: db, now: utcNow}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("connected to db")
	return s, nil
}

// Migrate applies the schema. Every statement in it is idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func nullableId(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	id := ns.String
	return &id
}

func exists(ctx context.Context, q sharedpg.Querier, query string, arg any) (bool, error) {
	var ok bool
	if err := q.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

const foreignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
