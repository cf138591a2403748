package pg

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertProfile(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	created, err := storage.UpsertProfile(ctx, domain.Identity{Id: id, DisplayName: "Sari", AvatarUrl: "https://a/1.png"})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Exp)
	assert.Equal(t, "Sari", created.DisplayName)

	_, err = storage.db.ExecContext(ctx, "UPDATE users SET exp = 12 WHERE id = $1", id)
	require.NoError(t, err)

	updated, err := storage.UpsertProfile(ctx, domain.Identity{Id: id, DisplayName: "Sari W"})
	require.NoError(t, err)
	assert.Equal(t, "Sari W", updated.DisplayName)
	assert.Equal(t, "https://a/1.png", updated.AvatarUrl, "empty field keeps stored value")
	assert.Equal(t, 12, updated.Exp, "profile sync never touches exp")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestGetUserNotFound(t *testing.T) {
	_, err := storage.GetUser(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, internal_errors.ErrNotFound)
}

func TestUserStats(t *testing.T) {
	ctx := context.Background()
	a := createTestUser(t, 0)
	b := createTestUser(t, 0)
	c := createTestUser(t, 0)

	thread := createTestThread(t, a)
	reply := createTestReply(t, thread.Id, a)
	createTestReply(t, thread.Id, b)

	_, err := castVote(ctx, b, domain.Cendol, domain.ThreadTarget(thread.Id))
	require.NoError(t, err)
	_, err = castVote(ctx, c, domain.Cendol, domain.ThreadTarget(thread.Id))
	require.NoError(t, err)
	_, err = castVote(ctx, b, domain.Bata, domain.ReplyTarget(reply.Id))
	require.NoError(t, err)

	stats, err := storage.UserStats(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStats{
		UserId:         a,
		Exp:            7,
		ThreadCount:    1,
		ReplyCount:     1,
		CendolReceived: 2,
		BataReceived:   1,
	}, stats)

	stats, err = storage.UserStats(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CendolGiven)
	assert.Equal(t, 1, stats.BataGiven)
	assert.Equal(t, 1, stats.ReplyCount)

	_, err = storage.UserStats(ctx, uuid.NewString())
	assert.ErrorIs(t, err, internal_errors.ErrNotFound)
}
