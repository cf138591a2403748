package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
)

const threadColumns = "id, title, content, user_id, category_id, created_at, updated_at"

func scanThread(row rowScanner) (domain.Thread, error) {
	var t domain.Thread
	var userId sql.NullString
	var createdAt, updatedAt int64
	if err := row.Scan(&t.Id, &t.Title, &t.Content, &userId, &t.CategoryId, &createdAt, &updatedAt); err != nil {
		return domain.Thread{}, err
	}
	t.UserId = nullableId(userId)
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updatedAt)
	return t, nil
}

func (s *Storage) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	var thread domain.Thread
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "SELECT count(*) FROM forum_categories WHERE id = ?", data.CategoryId)
		if err != nil {
			return fmt.Errorf("failed to validate category: %w", err)
		}
		if !ok {
			return internal_errors.NotFound("Category")
		}
		if ok, err = exists(ctx, tx, "SELECT count(*) FROM users WHERE id = ?", data.UserId); err != nil {
			return fmt.Errorf("failed to validate user: %w", err)
		}
		if !ok {
			return internal_errors.NotFound("User")
		}

		now := toMillis(s.now())
		thread, err = scanThread(tx.QueryRowContext(ctx, `
			INSERT INTO forum_threads (id, title, content, user_id, category_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING `+threadColumns,
			uuid.NewString(), data.Title, data.Content, data.UserId, data.CategoryId, now, now,
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
		"SELECT "+threadColumns+" FROM forum_threads WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Thread{}, internal_errors.NotFound("Thread")
	}
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to get thread: %w", err)
	}
	return thread, nil
}

func (s *Storage) ListThreads(ctx context.Context, categoryId domain.CategoryId) ([]domain.Thread, error) {
	ok, err := exists(ctx, s.db, "SELECT count(*) FROM forum_categories WHERE id = ?", categoryId)
	if err != nil {
		return nil, fmt.Errorf("failed to validate category: %w", err)
	}
	if !ok {
		return nil, internal_errors.NotFound("Category")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+threadColumns+`
		FROM forum_threads
		WHERE category_id = ?
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
