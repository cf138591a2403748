package handler

import (
	"context"

	"github.com/kopdar-dev/kopdar/backend/internal/service"
	"github.com/kopdar-dev/kopdar/shared/config"
)

// HealthChecker is satisfied by both storage backends.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	category service.CategoryService
	thread   service.ThreadService
	reply    service.ReplyService
	vote     service.VoteService
	user     service.UserService
	health   HealthChecker
	cfg      *config.Config
}

func New(
	category service.CategoryService,
	thread service.ThreadService,
	reply service.ReplyService,
	vote service.VoteService,
	user service.UserService,
	health HealthChecker,
	cfg *config.Config,
) *Handler {
	return &Handler{
		category: category,
		thread:   thread,
		reply:    reply,
		vote:     vote,
		user:     user,
		health:   health,
		cfg:      cfg,
	}
}
