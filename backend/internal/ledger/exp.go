package ledger

import (
	"context"
	"fmt"

	"github.com/kopdar-dev/kopdar/shared/domain"
)

// ExpStore reads and writes a user's EXP. GetExp returns an
// errors.ErrNotFound kind when the user row does not exist; ApplyDelta
// surfaces that instead of creating the user.
type ExpStore interface {
	GetExp(ctx context.Context, userId domain.UserId) (int, error)
	SetExp(ctx context.Context, userId domain.UserId, exp int) error
}

// Next is the floor rule: EXP never drops below zero and has no ceiling.
func Next(current, delta int) int {
	return max(0, current+delta)
}

// ApplyDelta performs one read-modify-write of a user's EXP and returns the
// stored value. Callers that need atomicity run it inside a transaction.
func ApplyDelta(ctx context.Context, store ExpStore, userId domain.UserId, delta int) (int, error) {
	_, next, err := applyDelta(ctx, store, userId, delta)
	return next, err
}

// applyDelta is ApplyDelta that also reports the value it started from, so
// callers can tell how far the floor let the EXP actually move.
func applyDelta(ctx context.Context, store ExpStore, userId domain.UserId, delta int) (before, after int, err error) {
	before, err = store.GetExp(ctx, userId)
	if err != nil {
		return 0, 0, err
	}

	after = Next(before, delta)
	if err := store.SetExp(ctx, userId, after); err != nil {
		return 0, 0, fmt.Errorf("failed to set exp: %w", err)
	}
	return before, after, nil
}
