package pg

import (
	"context"
	"fmt"

	"github.com/kopdar-dev/kopdar/shared/domain"
	"github.com/lib/pq"
)

// Batch lookups backing the aggregation view. Ids with no rows are simply
// absent from the returned maps.

func (s *Storage) ThreadVoteCounts(ctx context.Context, ids []domain.ThreadId) (map[domain.ThreadId]domain.VoteCount, error) {
	return s.voteCounts(ctx, "thread_id", ids)
}

func (s *Storage) ReplyVoteCounts(ctx context.Context, ids []domain.ReplyId) (map[domain.ReplyId]domain.VoteCount, error) {
	return s.voteCounts(ctx, "reply_id", ids)
}

func (s *Storage) voteCounts(ctx context.Context, column string, ids []string) (map[string]domain.VoteCount, error) {
	counts := make(map[string]domain.VoteCount, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+column+`, vote_type, count(*)
		FROM forum_votes
		WHERE `+column+` = ANY($1)
		GROUP BY `+column+`, vote_type
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, kind string
		var n int
		if err := rows.Scan(&id, &kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		c := counts[id]
		switch domain.VoteKind(kind) {
		case domain.Cendol:
			c.Cendol = n
		case domain.Bata:
			c.Bata = n
		}
		counts[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vote counts: %w", err)
	}
	return counts, nil
}

func (s *Storage) ReplyCounts(ctx context.Context, threadIds []domain.ThreadId) (map[domain.ThreadId]int, error) {
	counts := make(map[domain.ThreadId]int, len(threadIds))
	if len(threadIds) == 0 {
		return counts, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT thread_id, count(*)
		FROM forum_replies
		WHERE thread_id = ANY($1)
		GROUP BY thread_id
	`, pq.Array(threadIds))
	if err != nil {
		return nil, fmt.Errorf("failed to count replies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id domain.ThreadId
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan reply count: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reply counts: %w", err)
	}
	return counts, nil
}

func (s *Storage) AuthorSnapshots(ctx context.Context, userIds []domain.UserId) (map[domain.UserId]domain.AuthorSnapshot, error) {
	snapshots := make(map[domain.UserId]domain.AuthorSnapshot, len(userIds))
	if len(userIds) == 0 {
		return snapshots, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, avatar_url, exp
		FROM users
		WHERE id = ANY($1)
	`, pq.Array(userIds))
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id domain.UserId
		var a domain.AuthorSnapshot
		if err := rows.Scan(&id, &a.DisplayName, &a.AvatarUrl, &a.Exp); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		snapshots[id] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return snapshots, nil
}
