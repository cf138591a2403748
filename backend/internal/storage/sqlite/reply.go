package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
)

const replyColumns = "id, content, user_id, thread_id, created_at, updated_at"

func scanReply(row rowScanner) (domain.Reply, error) {
	var r domain.Reply
	var userId sql.NullString
	var createdAt, updatedAt int64
	if err := row.Scan(&r.Id, &r.Content, &userId, &r.ThreadId, &createdAt, &updatedAt); err != nil {
		return domain.Reply{}, err
	}
	r.UserId = nullableId(userId)
	r.CreatedAt = fromMillis(createdAt)
	r.UpdatedAt = fromMillis(updatedAt)
	return r, nil
}

func (s *Storage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error) {
	var reply domain.Reply
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "SELECT count(*) FROM forum_threads WHERE id = ?", data.ThreadId)
		if err != nil {
			return fmt.Errorf("failed to validate thread: %w", err)
		}
		if !ok {
			return internal_errors.NotFound("Thread")
		}
		if ok, err = exists(ctx, tx, "SELECT count(*) FROM users WHERE id = ?", data.UserId); err != nil {
			return fmt.Errorf("failed to validate user: %w", err)
		}
		if !ok {
			return internal_errors.NotFound("User")
		}

		now := toMillis(s.now())
		reply, err = scanReply(tx.QueryRowContext(ctx, `
			INSERT INTO forum_replies (id, content, user_id, thread_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING `+replyColumns,
			uuid.NewString(), data.Content, data.UserId, data.ThreadId, now, now,
		))
		if err != nil {
			return fmt.Errorf("failed to insert reply: %w", err)
		}
		return nil
	})
	return reply, err
}

func (s *Storage) ListReplies(ctx context.Context, threadId domain.ThreadId) ([]domain.Reply, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+replyColumns+`
		FROM forum_replies
		WHERE thread_id = ?
		ORDER BY created_at ASC, id ASC
	`, threadId)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	defer rows.Close()

	replies := []domain.Reply{}
	for rows.Next() {
		r, err := scanReply(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate replies: %w", err)
	}
	return replies, nil
}
