package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	sharedpg "github.com/kopdar-dev/kopdar/shared/storage/pg"
)

const replyColumns = "id, content, user_id, thread_id, created_at, updated_at"

func scanReply(row rowScanner) (domain.Reply, error) {
	var r domain.Reply
	var userId sql.NullString
	if err := row.Scan(&r.Id, &r.Content, &userId, &r.ThreadId, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return domain.Reply{}, err
	}
	r.UserId = nullableId(userId)
	return r, nil
}

func (s *Storage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error) {
	var reply domain.Reply
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "SELECT EXISTS (SELECT 1 FROM forum_threads WHERE id = $1)", data.ThreadId)
		if err != nil {
			return fmt.Errorf("failed to validate thread: %w", err)
		}
		if !ok {
			return internal_errors.NotFound("Thread")
		}
		if ok, err = exists(ctx, tx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", data.UserId); err != nil {
			return fmt.Errorf("failed to validate user: %w", err)
		}
		if !ok {
			return internal_errors.NotFound("User")
		}

		now := s.now()
		reply, err = scanReply(tx.QueryRowContext(ctx, `
			INSERT INTO forum_replies (id, content, user_id, thread_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+replyColumns,
			uuid.NewString(), data.Content, data.UserId, data.ThreadId, now,
		))
		if err != nil {
			return fmt.Errorf("failed to insert reply: %w", err)
		}
		return nil
	})
	return reply, err
}

// ListReplies returns a thread's replies, oldest first.
func (s *Storage) ListReplies(ctx context.Context, threadId domain.ThreadId) ([]domain.Reply, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+replyColumns+`
		FROM forum_replies
		WHERE thread_id = $1
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
