package ledger

import "github.com/kopdar-dev/kopdar/shared/domain"

type Activity int

const (
	ActivityThreadCreated Activity = iota
	ActivityReplyCreated
	ActivityCendolReceived
	ActivityBataReceived
)

// Replies are worth nothing on purpose, only threads earn creation EXP.
var rewards = map[Activity]int{
	ActivityThreadCreated:  1,
	ActivityReplyCreated:   0,
	ActivityCendolReceived: 5,
	ActivityBataReceived:   -3,
}

// Reward returns the EXP delta granted to the author for an activity.
func Reward(a Activity) int {
	return rewards[a]
}

func (a Activity) String() string {
	switch a {
	case ActivityThreadCreated:
		return "thread_created"
	case ActivityReplyCreated:
		return "reply_created"
	case ActivityCendolReceived:
		return "cendol_received"
	case ActivityBataReceived:
		return "bata_received"
	default:
		return "unknown"
	}
}

// ReceivedActivity maps a vote kind to the activity its author receives.
func ReceivedActivity(kind domain.VoteKind) Activity {
	if kind == domain.Bata {
		return ActivityBataReceived
	}
	return ActivityCendolReceived
}

// VoteDelta is the forward EXP delta of a vote of the given kind.
func VoteDelta(kind domain.VoteKind) int {
	return Reward(ReceivedActivity(kind))
}
