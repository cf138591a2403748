package service

import (
	"context"

	"github.com/kopdar-dev/kopdar/backend/internal/ledger"
	"github.com/kopdar-dev/kopdar/backend/internal/service/utils"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
)

type UserService interface {
	SyncProfile(ctx context.Context, identity domain.Identity) (domain.User, error)
	Get(ctx context.Context, id domain.UserId) (domain.User, error)
	Stats(ctx context.Context, id domain.UserId) (domain.UserStats, error)
}

type User struct {
	storage UserStorage
}

type UserStorage interface {
	GetUser(ctx context.Context, id domain.UserId) (domain.User, error)
	UpsertProfile(ctx context.Context, identity domain.Identity) (domain.User, error)
	UserStats(ctx context.Context, id domain.UserId) (domain.UserStats, error)
}

func NewUser(storage UserStorage) UserService {
	return &User{storage}
}

// SyncProfile provisions the caller's user row, or refreshes its display
// fields. Empty fields keep what is stored; EXP is never touched.
func (u *User) SyncProfile(ctx context.Context, identity domain.Identity) (domain.User, error) {
	if identity.Id == "" {
		return domain.User{}, internal_errors.Unauthenticated()
	}
	identity.DisplayName = utils.PlainText(identity.DisplayName)
	return u.storage.UpsertProfile(ctx, identity)
}

func (u *User) Get(ctx context.Context, id domain.UserId) (domain.User, error) {
	if id == "" {
		return domain.User{}, internal_errors.NotFound("User")
	}
	return u.storage.GetUser(ctx, id)
}

func (u *User) Stats(ctx context.Context, id domain.UserId) (domain.UserStats, error) {
	if id == "" {
		return domain.UserStats{}, internal_errors.NotFound("User")
	}
	stats, err := u.storage.UserStats(ctx, id)
	if err != nil {
		return domain.UserStats{}, err
	}
	stats.Level = ledger.Progress(stats.Exp)
	return stats, nil
}
