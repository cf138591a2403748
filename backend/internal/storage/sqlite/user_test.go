package sqlite

import (
	"context"
	"testing"

	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.UpsertProfile(ctx, domain.Identity{Id: "A", DisplayName: "Sari", AvatarUrl: "https://a/1.png"})
	require.NoError(t, err)
	assert.Equal(t, domain.User{Id: "A", DisplayName: "Sari", AvatarUrl: "https://a/1.png", Exp: 0, CreatedAt: created.CreatedAt}, created)

	_, err = s.db.ExecContext(ctx, "UPDATE users SET exp = 9 WHERE id = 'A'")
	require.NoError(t, err)

	updated, err := s.UpsertProfile(ctx, domain.Identity{Id: "A", AvatarUrl: "https://a/2.png"})
	require.NoError(t, err)
	assert.Equal(t, "Sari", updated.DisplayName)
	assert.Equal(t, "https://a/2.png", updated.AvatarUrl)
	assert.Equal(t, 9, updated.Exp)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = s.GetUser(ctx, "B")
	assert.ErrorIs(t, err, internal_errors.ErrNotFound)
}

func TestUserStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	createUser(t, s, "A", 0)
	createUser(t, s, "B", 0)
	createUser(t, s, "C", 0)
	thread := createThread(t, s, "A")
	reply := createReply(t, s, thread.Id, "A")
	createReply(t, s, thread.Id, "B")

	for _, v := range []struct {
		voter  domain.UserId
		kind   domain.VoteKind
		target domain.Target
	}{
		{"B", domain.Cendol, domain.ThreadTarget(thread.Id)},
		{"C", domain.Cendol, domain.ThreadTarget(thread.Id)},
		{"B", domain.Bata, domain.ReplyTarget(reply.Id)},
	} {
		_, err := castVote(s, v.voter, v.kind, v.target)
		require.NoError(t, err)
	}

	stats, err := s.UserStats(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, domain.UserStats{
		UserId:         "A",
		Exp:            7,
		ThreadCount:    1,
		ReplyCount:     1,
		CendolReceived: 2,
		BataReceived:   1,
	}, stats)

	stats, err = s.UserStats(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CendolGiven)
	assert.Equal(t, 1, stats.BataGiven)
	assert.Equal(t, 0, stats.CendolReceived)

	_, err = s.UserStats(ctx, "nobody")
	assert.ErrorIs(t, err, internal_errors.ErrNotFound)
}
