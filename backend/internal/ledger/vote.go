package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
)

// Tx is everything a vote needs, read and written as one unit. At most one
// vote exists per (voter, target); InsertVote reports a duplicate with the
// ErrStoreConflict kind.
type Tx interface {
	ExpStore

	// GetVote returns an ErrNotFound kind when the voter has no vote on target.
	GetVote(ctx context.Context, voter domain.UserId, target domain.Target) (domain.Vote, error)
	InsertVote(ctx context.Context, data domain.VoteCreationData) (domain.Vote, error)
	UpdateVoteKind(ctx context.Context, id domain.VoteId, kind domain.VoteKind) error
	DeleteVote(ctx context.Context, id domain.VoteId) error

	// TargetAuthor returns an ErrNotFound kind when the target does not exist
	// and ok=false when it exists but its author is gone.
	TargetAuthor(ctx context.Context, target domain.Target) (author domain.UserId, ok bool, err error)
}

type Outcome struct {
	Vote       *domain.VoteKind
	Transition Transition
	AuthorId   *domain.UserId
	AuthorExp  *int

	// Applied is how far each step moved the author's EXP after the floor,
	// so a bata on an author at 0 is 0. Empty when the author is unresolvable.
	Applied []int
}

// CastVote runs one vote request against tx: it reads the current vote,
// writes the new vote state and moves the author's EXP accordingly.
func CastVote(ctx context.Context, tx Tx, voter domain.UserId, kind domain.VoteKind, target domain.Target) (Outcome, error) {
	author, authorOk, err := tx.TargetAuthor(ctx, target)
	if err != nil {
		return Outcome{}, err
	}

	var current *domain.VoteKind
	existing, err := tx.GetVote(ctx, voter, target)
	switch {
	case err == nil:
		current = &existing.Kind
	case errors.Is(err, internal_errors.ErrNotFound):
	default:
		return Outcome{}, fmt.Errorf("failed to read vote: %w", err)
	}

	transition := Resolve(current, kind)
	switch transition.Action {
	case ActionInsert:
		_, err = tx.InsertVote(ctx, domain.VoteCreationData{UserId: voter, Target: target, Kind: kind})
	case ActionDelete:
		err = tx.DeleteVote(ctx, existing.Id)
	case ActionUpdate:
		err = tx.UpdateVoteKind(ctx, existing.Id, kind)
	}
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{Vote: transition.Next, Transition: transition}
	if !authorOk {
		return outcome, nil
	}

	for i, delta := range transition.Deltas {
		before, after, err := applyDelta(ctx, tx, author, delta)
		if i == 0 && errors.Is(err, internal_errors.ErrNotFound) {
			// author row removed after the target was read
			return outcome, nil
		}
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to apply exp to author: %w", err)
		}
		outcome.AuthorId = &author
		outcome.AuthorExp = &after
		outcome.Applied = append(outcome.Applied, after-before)
	}
	return outcome, nil
}
