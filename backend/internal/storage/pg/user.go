package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
)

const userColumns = "id, display_name, avatar_url, exp, created_at"

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.Id, &u.DisplayName, &u.AvatarUrl, &u.Exp, &u.CreatedAt)
	return u, err
}

func (s *Storage) GetUser(ctx context.Context, id domain.UserId) (domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, internal_errors.NotFound("User")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpsertProfile provisions the user row. Empty profile fields keep the
// stored value; exp is never touched here.
func (s *Storage) UpsertProfile(ctx context.Context, identity domain.Identity) (domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, display_name, avatar_url, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), users.display_name),
			avatar_url = COALESCE(NULLIF(EXCLUDED.avatar_url, ''), users.avatar_url)
		RETURNING `+userColumns,
		identity.Id, identity.DisplayName, identity.AvatarUrl, s.now(),
	))
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

// UserStats fills everything except Level, which is derived from Exp.
func (s *Storage) UserStats(ctx context.Context, id domain.UserId) (domain.UserStats, error) {
	stats := domain.UserStats{UserId: id}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			u.exp,
			(SELECT count(*) FROM forum_threads WHERE user_id = u.id),
			(SELECT count(*) FROM forum_replies WHERE user_id = u.id),
			(SELECT count(*) FROM forum_votes WHERE user_id = u.id AND vote_type = 'cendol'),
			(SELECT count(*) FROM forum_votes WHERE user_id = u.id AND vote_type = 'bata'),
			(SELECT count(*) FROM forum_votes v
				LEFT JOIN forum_threads t ON t.id = v.thread_id
				LEFT JOIN forum_replies r ON r.id = v.reply_id
				WHERE v.vote_type = 'cendol' AND COALESCE(t.user_id, r.user_id) = u.id),
			(SELECT count(*) FROM forum_votes v
				LEFT JOIN forum_threads t ON t.id = v.thread_id
				LEFT JOIN forum_replies r ON r.id = v.reply_id
				WHERE v.vote_type = 'bata' AND COALESCE(t.user_id, r.user_id) = u.id)
		FROM users u
		WHERE u.id = $1
	`, id).Scan(
		&stats.Exp, &stats.ThreadCount, &stats.ReplyCount,
		&stats.CendolGiven, &stats.BataGiven,
		&stats.CendolReceived, &stats.BataReceived,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserStats{}, internal_errors.NotFound("User")
	}
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("failed to get user stats: %w", err)
	}
	return stats, nil
}
