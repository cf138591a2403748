package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kopdar-dev/kopdar/backend/internal/ledger"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
)

const voteColumns = "id, user_id, thread_id, reply_id, vote_type, created_at"

func targetColumn(target domain.Target) string {
	if target.IsThread() {
		return "thread_id"
	}
	return "reply_id"
}

func scanVote(row rowScanner) (domain.Vote, error) {
	var v domain.Vote
	var threadId, replyId sql.NullString
	var kind string
	var createdAt int64
	if err := row.Scan(&v.Id, &v.UserId, &threadId, &replyId, &kind, &createdAt); err != nil {
		return domain.Vote{}, err
	}
	v.ThreadId = nullableId(threadId)
	v.ReplyId = nullableId(replyId)
	v.Kind = domain.VoteKind(kind)
	v.CreatedAt = fromMillis(createdAt)
	return v, nil
}

func getVote(ctx context.Context, q querier, voter domain.UserId, target domain.Target) (domain.Vote, error) {
	vote, err := scanVote(q.QueryRowContext(ctx,
		"SELECT "+voteColumns+" FROM forum_votes WHERE user_id = ? AND "+targetColumn(target)+" = ?",
		voter, target.Id()))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vote{}, internal_errors.NotFound("Vote")
	}
	if err != nil {
		return domain.Vote{}, fmt.Errorf("failed to get vote: %w", err)
	}
	return vote, nil
}

func (s *Storage) GetVote(ctx context.Context, voter domain.UserId, target domain.Target) (domain.Vote, error) {
	return getVote(ctx, s.db, voter, target)
}

// WithLedgerTx runs fn in one immediate transaction, so the whole
// read-modify-write holds the database write lock.
func (s *Storage) WithLedgerTx(ctx context.Context, fn func(ledger.Tx) error) error {
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&ledgerTx{q: tx, now: s.now})
	})
	if err != nil && (isUniqueViolation(err) || isBusy(err)) {
		return internal_errors.Conflict("Concurrent update, try again")
	}
	return err
}

type ledgerTx struct {
	q   querier
	now func() time.Time
}

var _ ledger.Tx = (*ledgerTx)(nil)

func (t *ledgerTx) GetExp(ctx context.Context, userId domain.UserId) (int, error) {
	var exp int
	err := t.q.QueryRowContext(ctx, "SELECT exp FROM users WHERE id = ?", userId).Scan(&exp)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, internal_errors.NotFound("User")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get exp: %w", err)
	}
	return exp, nil
}

func (t *ledgerTx) SetExp(ctx context.Context, userId domain.UserId, exp int) error {
	res, err := t.q.ExecContext(ctx, "UPDATE users SET exp = ? WHERE id = ?", exp, userId)
	if err != nil {
		return fmt.Errorf("failed to set exp: %w", err)
	}
	return expectOneRow(res, "User")
}

func (t *ledgerTx) GetVote(ctx context.Context, voter domain.UserId, target domain.Target) (domain.Vote, error) {
	return getVote(ctx, t.q, voter, target)
}

func (t *ledgerTx) InsertVote(ctx context.Context, data domain.VoteCreationData) (domain.Vote, error) {
	var threadId, replyId any
	if data.Target.IsThread() {
		threadId = data.Target.ThreadId
	} else {
		replyId = data.Target.ReplyId
	}
	vote, err := scanVote(t.q.QueryRowContext(ctx, `
		INSERT INTO forum_votes (id, user_id, thread_id, reply_id, vote_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+voteColumns,
		uuid.NewString(), data.UserId, threadId, replyId, string(data.Kind), toMillis(t.now()),
	))
	switch {
	case isUniqueViolation(err):
		return domain.Vote{}, internal_errors.Conflict("Vote already exists")
	case isForeignKeyViolation(err):
		return domain.Vote{}, internal_errors.NotFound("User")
	case err != nil:
		return domain.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}
	return vote, nil
}

func (t *ledgerTx) UpdateVoteKind(ctx context.Context, id domain.VoteId, kind domain.VoteKind) error {
	res, err := t.q.ExecContext(ctx, "UPDATE forum_votes SET vote_type = ? WHERE id = ?", string(kind), id)
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}
	return expectOneRow(res, "Vote")
}

func (t *ledgerTx) DeleteVote(ctx context.Context, id domain.VoteId) error {
	res, err := t.q.ExecContext(ctx, "DELETE FROM forum_votes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return expectOneRow(res, "Vote")
}

func (t *ledgerTx) TargetAuthor(ctx context.Context, target domain.Target) (domain.UserId, bool, error) {
	table, what := "forum_replies", "Reply"
	if target.IsThread() {
		table, what = "forum_threads", "Thread"
	}
	var author sql.NullString
	err := t.q.QueryRowContext(ctx, `
		SELECT u.id
		FROM `+table+` c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.id = ?
	`, target.Id()).Scan(&author)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, internal_errors.NotFound(what)
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve author: %w", err)
	}
	return author.String, author.Valid, nil
}

func expectOneRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return internal_errors.NotFound(what)
	}
	return nil
}
