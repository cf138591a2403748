package ledger

import "github.com/kopdar-dev/kopdar/shared/domain"

type Action int

const (
	ActionInsert Action = iota // no vote yet
	ActionDelete               // same kind again, toggle off
	ActionUpdate               // switch to the other kind
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionDelete:
		return "delete"
	case ActionUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Transition is the decision for one vote request. Deltas are applied to the
// author in order, each one clamped at zero on its own.
type Transition struct {
	Action   Action
	Previous *domain.VoteKind
	Next     *domain.VoteKind // nil means no vote
	Deltas   []int
}

// Resolve maps (current state, requested kind) to the new state and the EXP
// deltas for the target's author.
func Resolve(current *domain.VoteKind, requested domain.VoteKind) Transition {
	if current == nil {
		return Transition{
			Action: ActionInsert,
			Next:   &requested,
			Deltas: []int{VoteDelta(requested)},
		}
	}

	previous := *current
	if previous == requested {
		return Transition{
			Action:   ActionDelete,
			Previous: &previous,
			Deltas:   []int{-VoteDelta(previous)},
		}
	}

	// reverse the old vote first, then apply the new one
	return Transition{
		Action:   ActionUpdate,
		Previous: &previous,
		Next:     &requested,
		Deltas:   []int{-VoteDelta(previous), VoteDelta(requested)},
	}
}
