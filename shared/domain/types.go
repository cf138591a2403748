package domain

type (
	UserId      = string
	CategoryId  = string
	ThreadId    = string
	ReplyId     = string
	VoteId      = string
	ThreadTitle = string
	Content     = string
)
