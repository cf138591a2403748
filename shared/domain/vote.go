package domain

import (
	"time"

	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
)

type VoteKind string

const (
	Cendol VoteKind = "cendol"
	Bata   VoteKind = "bata"
)

func (k VoteKind) Valid() bool {
	return k == Cendol || k == Bata
}

// Target is exactly one of a thread or a reply.
type Target struct {
	ThreadId ThreadId
	ReplyId  ReplyId
}

func ThreadTarget(id ThreadId) Target { return Target{ThreadId: id} }
func ReplyTarget(id ReplyId) Target   { return Target{ReplyId: id} }

func (t Target) IsThread() bool { return t.ThreadId != "" }

func (t Target) Id() string {
	if t.IsThread() {
		return t.ThreadId
	}
	return t.ReplyId
}

// Kind is "thread" or "reply", used for log attrs and metric labels.
func (t Target) Kind() string {
	if t.IsThread() {
		return "thread"
	}
	return "reply"
}

func (t Target) Validate() error {
	if (t.ThreadId == "") == (t.ReplyId == "") {
		return internal_errors.Validation("Vote target must be exactly one of thread or reply")
	}
	return nil
}

type Vote struct {
	Id        VoteId    `json:"id"`
	UserId    UserId    `json:"user_id"`
	ThreadId  *ThreadId `json:"thread_id"`
	ReplyId   *ReplyId  `json:"reply_id"`
	Kind      VoteKind  `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}

type VoteCreationData struct {
	UserId UserId
	Target Target
	Kind   VoteKind
}
