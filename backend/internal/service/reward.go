package service

import (
	"context"
	"log/slog"

	"github.com/kopdar-dev/kopdar/backend/internal/ledger"
	"github.com/kopdar-dev/kopdar/shared/domain"
	"github.com/kopdar-dev/kopdar/shared/logger"
	"github.com/kopdar-dev/kopdar/shared/middleware/metrics"
)

type LedgerStorage interface {
	WithLedgerTx(ctx context.Context, fn func(tx ledger.Tx) error) error
}

// rewarder grants creation EXP. It never fails the caller: the content is
// already stored, so a failed reward is logged and counted instead.
type rewarder struct {
	storage LedgerStorage
	log     *slog.Logger
}

func newRewarder(storage LedgerStorage) rewarder {
	return rewarder{storage: storage, log: logger.For("reward")}
}

func (r rewarder) grant(ctx context.Context, userId domain.UserId, activity ledger.Activity) {
	delta := ledger.Reward(activity)
	if delta == 0 {
		return
	}

	var exp int
	err := r.storage.WithLedgerTx(ctx, func(tx ledger.Tx) (err error) {
		exp, err = ledger.ApplyDelta(ctx, tx, userId, delta)
		return err
	})
	if err != nil {
		metrics.RewardFailuresTotal.Inc()
		r.log.Warn("failed to apply creation reward",
			"user_id", userId, "activity", activity.String(), "delta", delta, "error", err)
		return
	}

	// rewards are positive, the floor never clips them
	metrics.RecordExp(delta)
	r.log.Debug("creation reward applied", "user_id", userId, "activity", activity.String(), "exp", exp)
}
