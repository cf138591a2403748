package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/kopdar-dev/kopdar/backend/internal/ledger"
	"github.com/kopdar-dev/kopdar/shared/domain"
	mw "github.com/kopdar-dev/kopdar/shared/middleware"
)

// --- Mocks for services ---

type MockCategoryService struct {
	MockList func() ([]domain.Category, error)
}

func (m *MockCategoryService) List(ctx context.Context) ([]domain.Category, error) {
	if m.MockList != nil {
		return m.MockList()
	}
	return []domain.Category{}, nil
}

type MockThreadService struct {
	MockCreate func(data domain.ThreadCreationData) (domain.Thread, error)
	MockGet    func(id domain.ThreadId) (domain.ThreadDetail, error)
	MockList   func(categoryId domain.CategoryId) ([]domain.Thread, error)
}

func (m *MockThreadService) Create(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return domain.Thread{}, nil
}

func (m *MockThreadService) Get(ctx context.Context, id domain.ThreadId) (domain.ThreadDetail, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.ThreadDetail{}, nil
}

func (m *MockThreadService) List(ctx context.Context, categoryId domain.CategoryId) ([]domain.Thread, error) {
	if m.MockList != nil {
		return m.MockList(categoryId)
	}
	return []domain.Thread{}, nil
}

type MockReplyService struct {
	MockCreate func(data domain.ReplyCreationData) (domain.Reply, error)
}

func (m *MockReplyService) Create(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return domain.Reply{}, nil
}

type MockVoteService struct {
	MockCast func(userId domain.UserId, kind domain.VoteKind, target domain.Target) (ledger.Outcome, error)
	MockGet  func(userId domain.UserId, target domain.Target) (*domain.VoteKind, error)
}

func (m *MockVoteService) Cast(ctx context.Context, userId domain.UserId, kind domain.VoteKind, target domain.Target) (ledger.Outcome, error) {
	if m.MockCast != nil {
		return m.MockCast(userId, kind, target)
	}
	return ledger.Outcome{}, nil
}

func (m *MockVoteService) Get(ctx context.Context, userId domain.UserId, target domain.Target) (*domain.VoteKind, error) {
	if m.MockGet != nil {
		return m.MockGet(userId, target)
	}
	return nil, nil
}

type MockUserService struct {
	MockSyncProfile func(identity domain.Identity) (domain.User, error)
	MockGet         func(id domain.UserId) (domain.User, error)
	MockStats       func(id domain.UserId) (domain.UserStats, error)
}

func (m *MockUserService) SyncProfile(ctx context.Context, identity domain.Identity) (domain.User, error) {
	if m.MockSyncProfile != nil {
		return m.MockSyncProfile(identity)
	}
	return domain.User{Id: identity.Id}, nil
}

func (m *MockUserService) Get(ctx context.Context, id domain.UserId) (domain.User, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.User{Id: id}, nil
}

func (m *MockUserService) Stats(ctx context.Context, id domain.UserId) (domain.UserStats, error) {
	if m.MockStats != nil {
		return m.MockStats(id)
	}
	return domain.UserStats{UserId: id}, nil
}

// --- Helpers ---

// testRouter mounts the handlers on the same paths the real router uses,
// without auth middleware so tests can choose the identity.
func testRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/categories", h.GetCategories)
	r.Get("/v1/categories/{category}/threads", h.GetThreads)
	r.Post("/v1/categories/{category}/threads", h.CreateThread)
	r.Get("/v1/threads/{thread}", h.GetThread)
	r.Post("/v1/threads/{thread}/replies", h.CreateReply)
	r.Post("/v1/threads/{thread}/vote", h.CastThreadVote)
	r.Get("/v1/threads/{thread}/vote", h.GetThreadVote)
	r.Post("/v1/replies/{reply}/vote", h.CastReplyVote)
	r.Get("/v1/replies/{reply}/vote", h.GetReplyVote)
	r.Put("/v1/users/me", h.SyncProfile)
	r.Get("/v1/users/{user}/stats", h.GetUserStats)
	return r
}

func createRequest(t *testing.T, method, url string, body []byte, identity *domain.Identity) *http.Request {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, bytes.NewBuffer(body))
	}
	if identity != nil {
		req = req.WithContext(mw.WithIdentity(req.Context(), identity))
	}
	return req
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rr, req)
	return rr
}

var alice = &domain.Identity{Id: "alice", DisplayName: "Alice", AvatarUrl: "https://cdn.example.com/alice.png"}
