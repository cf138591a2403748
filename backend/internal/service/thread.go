package service

import (
	"context"
	"log/slog"

	"github.com/kopdar-dev/kopdar/backend/internal/ledger"
	"github.com/kopdar-dev/kopdar/backend/internal/service/utils"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	"github.com/kopdar-dev/kopdar/shared/logger"
	"golang.org/x/sync/errgroup"
)

type ThreadService interface {
	Create(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error)
	Get(ctx context.Context, id domain.ThreadId) (domain.ThreadDetail, error)
	List(ctx context.Context, categoryId domain.CategoryId) ([]domain.Thread, error)
}

type Thread struct {
	storage    ThreadStorage
	validator  ThreadValidator
	aggregator *Aggregator
	reward     rewarder
	log        *slog.Logger
}

type ThreadStorage interface {
	CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error)
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	ListThreads(ctx context.Context, categoryId domain.CategoryId) ([]domain.Thread, error)
	ListReplies(ctx context.Context, threadId domain.ThreadId) ([]domain.Reply, error)
}

type ThreadValidator interface {
	Title(title string) error
	Content(content string) error
}

func NewThread(storage ThreadStorage, ledgerStorage LedgerStorage, validator ThreadValidator, aggregator *Aggregator) ThreadService {
	return &Thread{
		storage:    storage,
		validator:  validator,
		aggregator: aggregator,
		reward:     newRewarder(ledgerStorage),
		log:        logger.For("thread"),
	}
}

// Create stores the thread and then grants its author the creation reward.
// The reward is best effort and never fails the request.
func (b *Thread) Create(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	if data.UserId == "" {
		return domain.Thread{}, internal_errors.Unauthenticated()
	}

	data.Title = utils.PlainText(data.Title)
	data.Content = utils.PlainText(data.Content)
	if err := b.validator.Title(data.Title); err != nil {
		return domain.Thread{}, err
	}
	if err := b.validator.Content(data.Content); err != nil {
		return domain.Thread{}, err
	}

	thread, err := b.storage.CreateThread(ctx, data)
	if err != nil {
		return domain.Thread{}, err
	}
	b.log.Info("thread created", "thread_id", thread.Id, "category_id", thread.CategoryId, "user_id", data.UserId)

	b.reward.grant(ctx, data.UserId, ledger.ActivityThreadCreated)

	threads := []domain.Thread{thread}
	if err := b.aggregator.Threads(ctx, threads); err != nil {
		// the thread exists, a missing decoration is not worth a failed request
		b.log.Warn("failed to aggregate new thread", "thread_id", thread.Id, "error", err)
	}
	return threads[0], nil
}

// Get loads the thread and its replies concurrently, both with aggregates.
func (b *Thread) Get(ctx context.Context, id domain.ThreadId) (domain.ThreadDetail, error) {
	var (
		thread  domain.Thread
		replies []domain.Reply
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := b.storage.GetThread(gctx, id)
		if err != nil {
			return err
		}
		threads := []domain.Thread{t}
		if err := b.aggregator.Threads(gctx, threads); err != nil {
			return err
		}
		thread = threads[0]
		return nil
	})
	g.Go(func() error {
		r, err := b.storage.ListReplies(gctx, id)
		if err != nil {
			return err
		}
		if err := b.aggregator.Replies(gctx, r); err != nil {
			return err
		}
		replies = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ThreadDetail{}, err
	}

	if replies == nil {
		replies = []domain.Reply{}
	}
	return domain.ThreadDetail{Thread: thread, Replies: replies}, nil
}

func (b *Thread) List(ctx context.Context, categoryId domain.CategoryId) ([]domain.Thread, error) {
	threads, err := b.storage.ListThreads(ctx, categoryId)
	if err != nil {
		return nil, err
	}
	if err := b.aggregator.Threads(ctx, threads); err != nil {
		return nil, err
	}
	if threads == nil {
		threads = []domain.Thread{}
	}
	return threads, nil
}
