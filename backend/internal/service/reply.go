package service

import (
	"context"
	"log/slog"

	"github.com/kopdar-dev/kopdar/backend/internal/ledger"
	"github.com/kopdar-dev/kopdar/backend/internal/service/utils"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	"github.com/kopdar-dev/kopdar/shared/logger"
)

type ReplyService interface {
	Create(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error)
}

type Reply struct {
	storage    ReplyStorage
	validator  ReplyValidator
	aggregator *Aggregator
	reward     rewarder
	log        *slog.Logger
}

type ReplyStorage interface {
	CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error)
}

type ReplyValidator interface {
	Content(content string) error
}

func NewReply(storage ReplyStorage, ledgerStorage LedgerStorage, validator ReplyValidator, aggregator *Aggregator) ReplyService {
	return &Reply{
		storage:    storage,
		validator:  validator,
		aggregator: aggregator,
		reward:     newRewarder(ledgerStorage),
		log:        logger.For("reply"),
	}
}

func (b *Reply) Create(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error) {
	if data.UserId == "" {
		return domain.Reply{}, internal_errors.Unauthenticated()
	}

	data.Content = utils.PlainText(data.Content)
	if err := b.validator.Content(data.Content); err != nil {
		return domain.Reply{}, err
	}

	reply, err := b.storage.CreateReply(ctx, data)
	if err != nil {
		return domain.Reply{}, err
	}
	b.log.Info("reply created", "reply_id", reply.Id, "thread_id", reply.ThreadId, "user_id", data.UserId)

	// worth zero today, the reward table decides
	b.reward.grant(ctx, data.UserId, ledger.ActivityReplyCreated)

	replies := []domain.Reply{reply}
	if err := b.aggregator.Replies(ctx, replies); err != nil {
		b.log.Warn("failed to aggregate new reply", "reply_id", reply.Id, "error", err)
	}
	return replies[0], nil
}
