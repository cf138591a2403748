package api

import "github.com/kopdar-dev/kopdar/shared/domain"

// Request DTOs

type CreateThreadRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=20000"`
}

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required,max=20000"`
}

type CastVoteRequest struct {
	Kind domain.VoteKind `json:"vote_type" validate:"required,oneof=cendol bata"`
}

type SyncProfileRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
	AvatarUrl   string `json:"avatar_url" validate:"omitempty,url,max=500"`
}

// Response DTOs

type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

type ThreadsResponse struct {
	Threads []domain.Thread `json:"threads"`
}

// VoteResponse carries the caller's resulting vote, null when cleared.
// AuthorExp is omitted when the author could not be resolved.
type VoteResponse struct {
	Vote      *domain.VoteKind `json:"vote"`
	AuthorExp *int             `json:"author_exp,omitempty"`
}
