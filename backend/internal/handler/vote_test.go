package handler

import (
	"net/http"
	"testing"

	"github.com/kopdar-dev/kopdar/backend/internal/ledger"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVote(t *testing.T) {
	cendol := domain.Cendol
	exp := 6

	t.Run("thread vote returns the new state and author exp", func(t *testing.T) {
		h := &Handler{vote: &MockVoteService{
			MockCast: func(userId domain.UserId, kind domain.VoteKind, target domain.Target) (ledger.Outcome, error) {
				assert.Equal(t, "alice", userId)
				assert.Equal(t, domain.Cendol, kind)
				assert.Equal(t, domain.ThreadTarget("t1"), target)
				return ledger.Outcome{Vote: &cendol, AuthorExp: &exp}, nil
			},
		}}

		rr := serve(h, createRequest(t, http.MethodPost, "/v1/threads/t1/vote", []byte(`{"vote_type": "cendol"}`), alice))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"vote": "cendol", "author_exp": 6}`, rr.Body.String())
	})

	t.Run("toggle off on a reply with unknown author", func(t *testing.T) {
		h := &Handler{vote: &MockVoteService{
			MockCast: func(userId domain.UserId, kind domain.VoteKind, target domain.Target) (ledger.Outcome, error) {
				assert.Equal(t, domain.ReplyTarget("r1"), target)
				return ledger.Outcome{}, nil
			},
		}}

		rr := serve(h, createRequest(t, http.MethodPost, "/v1/replies/r1/vote", []byte(`{"vote_type": "bata"}`), alice))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"vote": null}`, rr.Body.String())
	})

	t.Run("unknown vote type", func(t *testing.T) {
		called := false
		h := &Handler{vote: &MockVoteService{
			MockCast: func(userId domain.UserId, kind domain.VoteKind, target domain.Target) (ledger.Outcome, error) {
				called = true
				return ledger.Outcome{}, nil
			},
		}}

		rr := serve(h, createRequest(t, http.MethodPost, "/v1/threads/t1/vote", []byte(`{"vote_type": "upvote"}`), alice))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, called)
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name   string
			err    error
			status int
		}{
			{"missing target", internal_errors.NotFound("Thread"), http.StatusNotFound},
			{"lost the race", internal_errors.Conflict("Vote changed concurrently"), http.StatusConflict},
			{"validation", internal_errors.Validation("bad"), http.StatusBadRequest},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h := &Handler{vote: &MockVoteService{
					MockCast: func(userId domain.UserId, kind domain.VoteKind, target domain.Target) (ledger.Outcome, error) {
						return ledger.Outcome{}, tt.err
					},
				}}

				rr := serve(h, createRequest(t, http.MethodPost, "/v1/threads/t1/vote", []byte(`{"vote_type": "bata"}`), alice))

				assert.Equal(t, tt.status, rr.Code)
			})
		}
	})

	t.Run("no identity", func(t *testing.T) {
		h := &Handler{vote: &MockVoteService{}}

		rr := serve(h, createRequest(t, http.MethodPost, "/v1/threads/t1/vote", []byte(`{"vote_type": "bata"}`), nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetVote(t *testing.T) {
	bata := domain.Bata

	t.Run("existing vote on a thread", func(t *testing.T) {
		h := &Handler{vote: &MockVoteService{
			MockGet: func(userId domain.UserId, target domain.Target) (*domain.VoteKind, error) {
				assert.Equal(t, domain.ThreadTarget("t1"), target)
				return &bata, nil
			},
		}}

		rr := serve(h, createRequest(t, http.MethodGet, "/v1/threads/t1/vote", nil, alice))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"vote": "bata"}`, rr.Body.String())
	})

	t.Run("no vote on a reply", func(t *testing.T) {
		h := &Handler{vote: &MockVoteService{
			MockGet: func(userId domain.UserId, target domain.Target) (*domain.VoteKind, error) {
				assert.Equal(t, domain.ReplyTarget("r1"), target)
				return nil, nil
			},
		}}

		rr := serve(h, createRequest(t, http.MethodGet, "/v1/replies/r1/vote", nil, alice))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"vote": null}`, rr.Body.String())
	})

	t.Run("no identity", func(t *testing.T) {
		h := &Handler{vote: &MockVoteService{}}

		rr := serve(h, createRequest(t, http.MethodGet, "/v1/replies/r1/vote", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
