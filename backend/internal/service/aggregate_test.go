package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kopdar-dev/kopdar/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockAggregateStorage mocks the AggregateStorage interface.
type MockAggregateStorage struct {
	threadVoteCountsFunc func(ids []domain.ThreadId) (map[domain.ThreadId]domain.VoteCount, error)
	replyVoteCountsFunc  func(ids []domain.ReplyId) (map[domain.ReplyId]domain.VoteCount, error)
	replyCountsFunc      func(threadIds []domain.ThreadId) (map[domain.ThreadId]int, error)
	authorSnapshotsFunc  func(userIds []domain.UserId) (map[domain.UserId]domain.AuthorSnapshot, error)

	mu          sync.Mutex
	authorCalls [][]domain.UserId
}

func (m *MockAggregateStorage) ThreadVoteCounts(ctx context.Context, ids []domain.ThreadId) (map[domain.ThreadId]domain.VoteCount, error) {
	if m.threadVoteCountsFunc != nil {
		return m.threadVoteCountsFunc(ids)
	}
	return map[domain.ThreadId]domain.VoteCount{}, nil
}

func (m *MockAggregateStorage) ReplyVoteCounts(ctx context.Context, ids []domain.ReplyId) (map[domain.ReplyId]domain.VoteCount, error) {
	if m.replyVoteCountsFunc != nil {
		return m.replyVoteCountsFunc(ids)
	}
	return map[domain.ReplyId]domain.VoteCount{}, nil
}

func (m *MockAggregateStorage) ReplyCounts(ctx context.Context, threadIds []domain.ThreadId) (map[domain.ThreadId]int, error) {
	if m.replyCountsFunc != nil {
		return m.replyCountsFunc(threadIds)
	}
	return map[domain.ThreadId]int{}, nil
}

func (m *MockAggregateStorage) AuthorSnapshots(ctx context.Context, userIds []domain.UserId) (map[domain.UserId]domain.AuthorSnapshot, error) {
	m.mu.Lock()
	m.authorCalls = append(m.authorCalls, userIds)
	m.mu.Unlock()
	if m.authorSnapshotsFunc != nil {
		return m.authorSnapshotsFunc(userIds)
	}
	return map[domain.UserId]domain.AuthorSnapshot{}, nil
}

func TestAggregatorThreads(t *testing.T) {
	ctx := context.Background()

	t.Run("fills counts and authors", func(t *testing.T) {
		storage := &MockAggregateStorage{
			threadVoteCountsFunc: func(ids []domain.ThreadId) (map[domain.ThreadId]domain.VoteCount, error) {
				assert.ElementsMatch(t, []domain.ThreadId{"t1", "t2", "t3"}, ids)
				return map[domain.ThreadId]domain.VoteCount{"t1": {Cendol: 2, Bata: 1}}, nil
			},
			replyCountsFunc: func(threadIds []domain.ThreadId) (map[domain.ThreadId]int, error) {
				return map[domain.ThreadId]int{"t2": 4}, nil
			},
			authorSnapshotsFunc: func(userIds []domain.UserId) (map[domain.UserId]domain.AuthorSnapshot, error) {
				return map[domain.UserId]domain.AuthorSnapshot{"alice": {DisplayName: "Alice", Exp: 12}}, nil
			},
		}
		threads := []domain.Thread{
			{Id: "t1", UserId: userPtr("alice")},
			{Id: "t2", UserId: userPtr("alice")},
			{Id: "t3", UserId: nil},
		}

		err := NewAggregator(storage).Threads(ctx, threads)

		require.NoError(t, err)
		assert.Equal(t, domain.VoteCount{Cendol: 2, Bata: 1}, threads[0].VoteCount)
		assert.Equal(t, domain.VoteCount{}, threads[1].VoteCount, "missing counts default to zero")
		assert.Equal(t, 0, threads[0].ReplyCount)
		assert.Equal(t, 4, threads[1].ReplyCount)
		require.NotNil(t, threads[0].User)
		assert.Equal(t, "Alice", threads[0].User.DisplayName)
		assert.Equal(t, 12, threads[1].User.Exp)
		assert.Nil(t, threads[2].User)

		require.Len(t, storage.authorCalls, 1)
		assert.Equal(t, []domain.UserId{"alice"}, storage.authorCalls[0], "authors are looked up once each")
	})

	t.Run("author without row gets no snapshot", func(t *testing.T) {
		threads := []domain.Thread{{Id: "t1", UserId: userPtr("ghost")}}

		require.NoError(t, NewAggregator(&MockAggregateStorage{}).Threads(ctx, threads))
		assert.Nil(t, threads[0].User)
	})

	t.Run("empty input skips storage", func(t *testing.T) {
		storage := &MockAggregateStorage{
			threadVoteCountsFunc: func(ids []domain.ThreadId) (map[domain.ThreadId]domain.VoteCount, error) {
				t.Fatal("should not be called")
				return nil, nil
			},
		}
		assert.NoError(t, NewAggregator(storage).Threads(ctx, nil))
	})

	t.Run("storage error", func(t *testing.T) {
		storage := &MockAggregateStorage{
			replyCountsFunc: func(threadIds []domain.ThreadId) (map[domain.ThreadId]int, error) {
				return nil, errors.New("db down")
			},
		}
		err := NewAggregator(storage).Threads(ctx, []domain.Thread{{Id: "t1"}})
		assert.ErrorContains(t, err, "db down")
	})
}

func TestAggregatorReplies(t *testing.T) {
	ctx := context.Background()

	storage := &MockAggregateStorage{
		replyVoteCountsFunc: func(ids []domain.ReplyId) (map[domain.ReplyId]domain.VoteCount, error) {
			return map[domain.ReplyId]domain.VoteCount{"r2": {Bata: 3}}, nil
		},
		authorSnapshotsFunc: func(userIds []domain.UserId) (map[domain.UserId]domain.AuthorSnapshot, error) {
			return map[domain.UserId]domain.AuthorSnapshot{"bob": {DisplayName: "Bob"}}, nil
		},
	}
	replies := []domain.Reply{
		{Id: "r1", UserId: userPtr("bob")},
		{Id: "r2"},
	}

	require.NoError(t, NewAggregator(storage).Replies(ctx, replies))
	assert.Equal(t, domain.VoteCount{}, replies[0].VoteCount)
	assert.Equal(t, domain.VoteCount{Bata: 3}, replies[1].VoteCount)
	require.NotNil(t, replies[0].User)
	assert.Equal(t, "Bob", replies[0].User.DisplayName)
	assert.Nil(t, replies[1].User)

	t.Run("storage error", func(t *testing.T) {
		failing := &MockAggregateStorage{
			authorSnapshotsFunc: func(userIds []domain.UserId) (map[domain.UserId]domain.AuthorSnapshot, error) {
				return nil, errors.New("timeout")
			},
		}
		err := NewAggregator(failing).Replies(ctx, []domain.Reply{{Id: "r1"}})
		assert.ErrorContains(t, err, "timeout")
	})
}
