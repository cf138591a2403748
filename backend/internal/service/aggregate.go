package service

import (
	"context"
	"fmt"

	"github.com/kopdar-dev/kopdar/shared/domain"
	"golang.org/x/sync/errgroup"
)

// AggregateStorage answers batch lookups. Ids without rows are simply absent
// from the returned maps.
type AggregateStorage interface {
	ThreadVoteCounts(ctx context.Context, ids []domain.ThreadId) (map[domain.ThreadId]domain.VoteCount, error)
	ReplyVoteCounts(ctx context.Context, ids []domain.ReplyId) (map[domain.ReplyId]domain.VoteCount, error)
	ReplyCounts(ctx context.Context, threadIds []domain.ThreadId) (map[domain.ThreadId]int, error)
	AuthorSnapshots(ctx context.Context, userIds []domain.UserId) (map[domain.UserId]domain.AuthorSnapshot, error)
}

// Aggregator decorates threads and replies with vote counts, reply counts
// and author snapshots, one batch query per aggregate.
type Aggregator struct {
	storage AggregateStorage
}

func NewAggregator(storage AggregateStorage) *Aggregator {
	return &Aggregator{storage}
}

// Threads fills the aggregates of threads in place.
func (a *Aggregator) Threads(ctx context.Context, threads []domain.Thread) error {
	if len(threads) == 0 {
		return nil
	}

	ids := make([]domain.ThreadId, 0, len(threads))
	authors := make([]domain.UserId, 0, len(threads))
	for _, t := range threads {
		ids = append(ids, t.Id)
		if t.UserId != nil {
			authors = append(authors, *t.UserId)
		}
	}

	var (
		votes       map[domain.ThreadId]domain.VoteCount
		replyCounts map[domain.ThreadId]int
		snapshots   map[domain.UserId]domain.AuthorSnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		votes, err = a.storage.ThreadVoteCounts(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		replyCounts, err = a.storage.ReplyCounts(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		snapshots, err = a.storage.AuthorSnapshots(gctx, unique(authors))
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to aggregate threads: %w", err)
	}

	for i := range threads {
		t := &threads[i]
		t.VoteCount = votes[t.Id]
		t.ReplyCount = replyCounts[t.Id]
		t.User = snapshotFor(snapshots, t.UserId)
	}
	return nil
}

// Replies fills the aggregates of replies in place.
func (a *Aggregator) Replies(ctx context.Context, replies []domain.Reply) error {
	if len(replies) == 0 {
		return nil
	}

	ids := make([]domain.ReplyId, 0, len(replies))
	authors := make([]domain.UserId, 0, len(replies))
	for _, r := range replies {
		ids = append(ids, r.Id)
		if r.UserId != nil {
			authors = append(authors, *r.UserId)
		}
	}

	var (
		votes     map[domain.ReplyId]domain.VoteCount
		snapshots map[domain.UserId]domain.AuthorSnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		votes, err = a.storage.ReplyVoteCounts(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		snapshots, err = a.storage.AuthorSnapshots(gctx, unique(authors))
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to aggregate replies: %w", err)
	}

	for i := range replies {
		r := &replies[i]
		r.VoteCount = votes[r.Id]
		r.User = snapshotFor(snapshots, r.UserId)
	}
	return nil
}

func snapshotFor(snapshots map[domain.UserId]domain.AuthorSnapshot, userId *domain.UserId) *domain.AuthorSnapshot {
	if userId == nil {
		return nil
	}
	snapshot, ok := snapshots[*userId]
	if !ok {
		return nil
	}
	return &snapshot
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
