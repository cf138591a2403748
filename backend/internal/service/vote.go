package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kopdar-dev/kopdar/backend/internal/ledger"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	"github.com/kopdar-dev/kopdar/shared/logger"
	"github.com/kopdar-dev/kopdar/shared/middleware/metrics"
)

const DefaultVoteMaxAttempts = 3

type VoteService interface {
	Cast(ctx context.Context, userId domain.UserId, kind domain.VoteKind, target domain.Target) (ledger.Outcome, error)
	Get(ctx context.Context, userId domain.UserId, target domain.Target) (*domain.VoteKind, error)
}

type Vote struct {
	storage     VoteStorage
	maxAttempts int
	log         *slog.Logger
}

type VoteStorage interface {
	LedgerStorage
	GetVote(ctx context.Context, voter domain.UserId, target domain.Target) (domain.Vote, error)
}

func NewVote(storage VoteStorage, maxAttempts int) VoteService {
	if maxAttempts < 1 {
		maxAttempts = DefaultVoteMaxAttempts
	}
	return &Vote{storage: storage, maxAttempts: maxAttempts, log: logger.For("vote")}
}

// Cast toggles or switches the caller's vote on target and moves the
// author's EXP in the same transaction. A transaction that loses a race
// against a concurrent vote of the same user is retried from scratch.
func (v *Vote) Cast(ctx context.Context, userId domain.UserId, kind domain.VoteKind, target domain.Target) (ledger.Outcome, error) {
	if userId == "" {
		return ledger.Outcome{}, internal_errors.Unauthenticated()
	}
	if !kind.Valid() {
		return ledger.Outcome{}, internal_errors.Validation("Vote type must be cendol or bata")
	}
	if err := target.Validate(); err != nil {
		return ledger.Outcome{}, err
	}

	var (
		outcome ledger.Outcome
		err     error
	)
	for attempt := 1; attempt <= v.maxAttempts; attempt++ {
		err = v.storage.WithLedgerTx(ctx, func(tx ledger.Tx) (txErr error) {
			outcome, txErr = ledger.CastVote(ctx, tx, userId, kind, target)
			return txErr
		})
		if err == nil || !errors.Is(err, internal_errors.ErrStoreConflict) || attempt == v.maxAttempts {
			break
		}
		metrics.VoteConflictsTotal.Inc()
		v.log.Debug("vote conflict, retrying", "user_id", userId, "target", target.Kind(), "target_id", target.Id(), "attempt", attempt)
		if ctx.Err() != nil {
			return ledger.Outcome{}, ctx.Err()
		}
	}
	if err != nil {
		return ledger.Outcome{}, err
	}

	metrics.VotesTotal.WithLabelValues(target.Kind(), outcome.Transition.Action.String()).Inc()
	for _, moved := range outcome.Applied {
		metrics.RecordExp(moved)
	}

	attrs := []any{
		"user_id", userId,
		"target", target.Kind(),
		"target_id", target.Id(),
		"action", outcome.Transition.Action.String(),
	}
	if outcome.AuthorId != nil {
		attrs = append(attrs, "author_id", *outcome.AuthorId, "author_exp", *outcome.AuthorExp)
	}
	v.log.Info("vote cast", attrs...)

	return outcome, nil
}

// Get returns the caller's current vote on target, nil when there is none.
func (v *Vote) Get(ctx context.Context, userId domain.UserId, target domain.Target) (*domain.VoteKind, error) {
	if userId == "" {
		return nil, internal_errors.Unauthenticated()
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	vote, err := v.storage.GetVote(ctx, userId, target)
	if errors.Is(err, internal_errors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote.Kind, nil
}
