// Package ledger holds the voting and experience-point rules of the forum.
//
// Everything here is storage agnostic: the resolver decides what a vote
// request turns into, the accumulator applies EXP deltas with a floor at
// zero, and the reward table says how much each activity is worth. Callers
// supply a Tx (usually a database transaction) that the rules run against.
package ledger
