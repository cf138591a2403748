package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title      ThreadTitle
	Content    Content
	CategoryId CategoryId
	UserId     UserId
}

type ReplyCreationData struct {
	Content  Content
	ThreadId ThreadId
	UserId   UserId
}

type VoteCount struct {
	Cendol int `json:"cendol"`
	Bata   int `json:"bata"`
}

type Thread struct {
	Id         ThreadId        `json:"id"`
	Title      ThreadTitle     `json:"title"`
	Content    Content         `json:"content"`
	UserId     *UserId         `json:"user_id"` // nil once the author can no longer be resolved
	CategoryId CategoryId      `json:"category_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	User       *AuthorSnapshot `json:"user"`
	VoteCount  VoteCount       `json:"vote_count"`
	ReplyCount int             `json:"reply_count"`
}

type Reply struct {
	Id        ReplyId         `json:"id"`
	Content   Content         `json:"content"`
	UserId    *UserId         `json:"user_id"`
	ThreadId  ThreadId        `json:"thread_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	User      *AuthorSnapshot `json:"user"`
	VoteCount VoteCount       `json:"vote_count"`
}

type ThreadDetail struct {
	Thread  Thread  `json:"thread"`
	Replies []Reply `json:"replies"`
}
