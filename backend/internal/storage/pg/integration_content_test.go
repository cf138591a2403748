package pg

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kopdar-dev/kopdar/backend/internal/ledger"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategories(t *testing.T) {
	categories, err := storage.ListCategories(context.Background())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(categories), 4)
	assert.Equal(t, "umum", categories[0].Id, "seeded categories come oldest first")
	for i := 1; i < len(categories); i++ {
		assert.False(t, categories[i].CreatedAt.Before(categories[i-1].CreatedAt))
	}
}

func TestCreateThread(t *testing.T) {
	ctx := context.Background()
	author := createTestUser(t, 0)

	t.Run("success", func(t *testing.T) {
		thread := createTestThread(t, author)

		assert.NotEmpty(t, thread.Id)
		require.NotNil(t, thread.UserId)
		assert.Equal(t, author, *thread.UserId)
		assert.Equal(t, testCategory, thread.CategoryId)
		assert.Equal(t, thread.CreatedAt, thread.UpdatedAt)

		got, err := storage.GetThread(ctx, thread.Id)
		require.NoError(t, err)
		assert.Equal(t, thread.Title, got.Title)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := storage.CreateThread(ctx, domain.ThreadCreationData{Title: "t", Content: "c", CategoryId: "nope", UserId: author})
		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := storage.CreateThread(ctx, domain.ThreadCreationData{Title: "t", Content: "c", CategoryId: testCategory, UserId: uuid.NewString()})
		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
	})
}

func TestGetThreadNotFound(t *testing.T) {
	_, err := storage.GetThread(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, internal_errors.ErrNotFound)
}

func TestListThreads(t *testing.T) {
	ctx := context.Background()
	author := createTestUser(t, 0)

	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	storage.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Minute) }
	defer func() { storage.now = utcNow }()

	older, err := storage.CreateThread(ctx, domain.ThreadCreationData{Title: "a", Content: "c", CategoryId: "jual-beli", UserId: author})
	require.NoError(t, err)
	newer, err := storage.CreateThread(ctx, domain.ThreadCreationData{Title: "b", Content: "c", CategoryId: "jual-beli", UserId: author})
	require.NoError(t, err)

	threads, err := storage.ListThreads(ctx, "jual-beli")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(threads), 2)
	assert.Equal(t, newer.Id, threads[0].Id, "newest first")
	assert.Equal(t, older.Id, threads[1].Id)

	_, err = storage.ListThreads(ctx, "nope")
	assert.ErrorIs(t, err, internal_errors.ErrNotFound)
}

func TestThreadAuthorDeleted(t *testing.T) {
	ctx := context.Background()
	author := createTestUser(t, 0)
	thread := createTestThread(t, author)

	deleteUser(t, author)

	got, err := storage.GetThread(ctx, thread.Id)
	require.NoError(t, err)
	assert.Nil(t, got.UserId, "thread survives with no author")
}

func TestReplies(t *testing.T) {
	ctx := context.Background()
	author := createTestUser(t, 0)
	thread := createTestThread(t, author)

	first := createTestReply(t, thread.Id, author)
	second := createTestReply(t, thread.Id, author)

	replies, err := storage.ListReplies(ctx, thread.Id)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, first.Id, replies[0].Id, "oldest first")
	assert.Equal(t, second.Id, replies[1].Id)

	t.Run("unknown thread", func(t *testing.T) {
		_, err := storage.CreateReply(ctx, domain.ReplyCreationData{Content: "c", ThreadId: uuid.NewString(), UserId: author})
		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
	})

	t.Run("empty thread", func(t *testing.T) {
		replies, err := storage.ListReplies(ctx, createTestThread(t, author).Id)
		require.NoError(t, err)
		assert.Empty(t, replies)
	})
}

func TestAggregates(t *testing.T) {
	ctx := context.Background()
	author := createTestUser(t, 7)
	voters := []domain.UserId{createTestUser(t, 0), createTestUser(t, 0), createTestUser(t, 0)}
	thread := createTestThread(t, author)
	quiet := createTestThread(t, author)
	reply := createTestReply(t, thread.Id, author)
	createTestReply(t, thread.Id, voters[0])

	castAll := func(target domain.Target, kinds ...domain.VoteKind) {
		for i, kind := range kinds {
			err := storage.WithLedgerTx(ctx, func(tx ledger.Tx) error {
				_, err := tx.InsertVote(ctx, domain.VoteCreationData{UserId: voters[i], Target: target, Kind: kind})
				return err
			})
			require.NoError(t, err)
		}
	}
	castAll(domain.ThreadTarget(thread.Id), domain.Cendol, domain.Cendol, domain.Bata)
	castAll(domain.ReplyTarget(reply.Id), domain.Bata)

	threadCounts, err := storage.ThreadVoteCounts(ctx, []domain.ThreadId{thread.Id, quiet.Id})
	require.NoError(t, err)
	assert.Equal(t, domain.VoteCount{Cendol: 2, Bata: 1}, threadCounts[thread.Id])
	_, ok := threadCounts[quiet.Id]
	assert.False(t, ok, "threads without votes are absent")

	replyCounts, err := storage.ReplyVoteCounts(ctx, []domain.ReplyId{reply.Id})
	require.NoError(t, err)
	assert.Equal(t, domain.VoteCount{Bata: 1}, replyCounts[reply.Id])

	numReplies, err := storage.ReplyCounts(ctx, []domain.ThreadId{thread.Id, quiet.Id})
	require.NoError(t, err)
	assert.Equal(t, 2, numReplies[thread.Id])
	assert.Equal(t, 0, numReplies[quiet.Id])

	snapshots, err := storage.AuthorSnapshots(ctx, []domain.UserId{author, uuid.NewString()})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 7, snapshots[author].Exp)

	empty, err := storage.AuthorSnapshots(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
