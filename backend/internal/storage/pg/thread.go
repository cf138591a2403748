package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	sharedpg "github.com/kopdar-dev/kopdar/shared/storage/pg"
)

const threadColumns = "id, title, content, user_id, category_id, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanThread(row rowScanner) (domain.Thread, error) {
	var t domain.Thread
	var userId sql.NullString
	if err := row.Scan(&t.Id, &t.Title, &t.Content, &userId, &t.CategoryId, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Thread{}, err
	}
	t.UserId = nullableId(userId)
	return t, nil
}

// CreateThread inserts a thread after checking that its category and author exist.
func (s *Storage) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	var thread domain.Thread
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "SELECT EXISTS (SELECT 1 FROM forum_categories WHERE id = $1)", data.CategoryId)
		if err != nil {
			return fmt.Errorf("failed to validate category: %w", err)
		}
		if !ok {
			return internal_errors.NotFound("Category")
		}
		if ok, err = exists(ctx, tx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", data.UserId); err != nil {
			return fmt.Errorf("failed to validate user: %w", err)
		}
		if !ok {
			return internal_errors.NotFound("User")
		}

		now := s.now()
		thread, err = scanThread(tx.QueryRowContext(ctx, `
			INSERT INTO forum_threads (id, title, content, user_id, category_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+threadColumns,
			uuid.NewString(), data.Title, data.Content, data.UserId, data.CategoryId, now,
		))
		if err != nil {
			return fmt.Errorf("failed to insert thread: %w", err)
		}
		return nil
	})
	return thread, err
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	thread, err := scanThread(s.db.QueryRowContext(ctx,
		"SELECT "+threadColumns+" FROM forum_threads WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Thread{}, internal_errors.NotFound("Thread")
	}
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to get thread: %w", err)
	}
	return thread, nil
}

// ListThreads returns the category's threads, newest first.
func (s *Storage) ListThreads(ctx context.Context, categoryId domain.CategoryId) ([]domain.Thread, error) {
	ok, err := exists(ctx, s.db, "SELECT EXISTS (SELECT 1 FROM forum_categories WHERE id = $1)", categoryId)
	if err != nil {
		return nil, fmt.Errorf("failed to validate category: %w", err)
	}
	if !ok {
		return nil, internal_errors.NotFound("Category")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+threadColumns+`
		FROM forum_threads
		WHERE category_id = $1
		ORDER BY created_at DESC, id DESC
	`, categoryId)
	if err != nil {
		return nil, fmt.Errorf("failed to query threads: %w", err)
	}
	defer rows.Close()

	threads := []domain.Thread{}
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate threads: %w", err)
	}
	return threads, nil
}
