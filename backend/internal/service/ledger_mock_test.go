package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/kopdar-dev/kopdar/backend/internal/ledger"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
)

// MockLedgerStorage mocks LedgerStorage and VoteStorage. Without a
// withLedgerTxFunc it runs fn against tx under a lock and rolls back the
// in-memory state when fn fails.
type MockLedgerStorage struct {
	withLedgerTxFunc func(fn func(tx ledger.Tx) error) error
	getVoteFunc      func(voter domain.UserId, target domain.Target) (domain.Vote, error)

	tx *MemoryTx

	mu       sync.Mutex
	txCalls  int
	getCalls int
}

func (m *MockLedgerStorage) WithLedgerTx(ctx context.Context, fn func(tx ledger.Tx) error) error {
	m.mu.Lock()
	m.txCalls++
	m.mu.Unlock()
	if m.withLedgerTxFunc != nil {
		return m.withLedgerTxFunc(fn)
	}

	m.tx.mu.Lock()
	defer m.tx.mu.Unlock()
	snapshot := m.tx.clone()
	if err := fn(m.tx); err != nil {
		m.tx.restore(snapshot)
		return err
	}
	return nil
}

func (m *MockLedgerStorage) GetVote(ctx context.Context, voter domain.UserId, target domain.Target) (domain.Vote, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	if m.getVoteFunc != nil {
		return m.getVoteFunc(voter, target)
	}
	m.tx.mu.Lock()
	defer m.tx.mu.Unlock()
	return m.tx.GetVote(ctx, voter, target)
}

func (m *MockLedgerStorage) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txCalls
}

// MemoryTx is an in-memory ledger.Tx. authors maps a target id to its
// author; a nil author is a target whose author is gone and a missing key
// is a target that does not exist.
type MemoryTx struct {
	mu sync.Mutex

	exp     map[domain.UserId]int
	votes   map[string]domain.Vote
	authors map[string]*domain.UserId
	nextId  int

	// failures injected into the next InsertVote calls, one per call
	insertErrs []error
}

func NewMemoryTx() *MemoryTx {
	return &MemoryTx{
		exp:     map[domain.UserId]int{},
		votes:   map[string]domain.Vote{},
		authors: map[string]*domain.UserId{},
	}
}

func (m *MemoryTx) withUser(id domain.UserId, exp int) *MemoryTx {
	m.exp[id] = exp
	return m
}

func (m *MemoryTx) withTarget(target domain.Target, author *domain.UserId) *MemoryTx {
	m.authors[target.Id()] = author
	return m
}

func voteKey(voter domain.UserId, target domain.Target) string {
	return voter + "|" + target.Kind() + "|" + target.Id()
}

func (m *MemoryTx) GetExp(ctx context.Context, userId domain.UserId) (int, error) {
	exp, ok := m.exp[userId]
	if !ok {
		return 0, internal_errors.NotFound("User")
	}
	return exp, nil
}

func (m *MemoryTx) SetExp(ctx context.Context, userId domain.UserId, exp int) error {
	if _, ok := m.exp[userId]; !ok {
		return internal_errors.NotFound("User")
	}
	m.exp[userId] = exp
	return nil
}

func (m *MemoryTx) GetVote(ctx context.Context, voter domain.UserId, target domain.Target) (domain.Vote, error) {
	v, ok := m.votes[voteKey(voter, target)]
	if !ok {
		return domain.Vote{}, internal_errors.NotFound("Vote")
	}
	return v, nil
}

func (m *MemoryTx) InsertVote(ctx context.Context, data domain.VoteCreationData) (domain.Vote, error) {
	if len(m.insertErrs) > 0 {
		err := m.insertErrs[0]
		m.insertErrs = m.insertErrs[1:]
		return domain.Vote{}, err
	}
	key := voteKey(data.UserId, data.Target)
	if _, ok := m.votes[key]; ok {
		return domain.Vote{}, internal_errors.Conflict("Vote already exists")
	}
	m.nextId++
	v := domain.Vote{Id: fmt.Sprintf("v%d", m.nextId), UserId: data.UserId, Kind: data.Kind}
	m.votes[key] = v
	return v, nil
}

func (m *MemoryTx) UpdateVoteKind(ctx context.Context, id domain.VoteId, kind domain.VoteKind) error {
	for key, v := range m.votes {
		if v.Id == id {
			v.Kind = kind
			m.votes[key] = v
			return nil
		}
	}
	return internal_errors.NotFound("Vote")
}

func (m *MemoryTx) DeleteVote(ctx context.Context, id domain.VoteId) error {
	for key, v := range m.votes {
		if v.Id == id {
			delete(m.votes, key)
			return nil
		}
	}
	return internal_errors.NotFound("Vote")
}

func (m *MemoryTx) TargetAuthor(ctx context.Context, target domain.Target) (domain.UserId, bool, error) {
	author, ok := m.authors[target.Id()]
	if !ok {
		return "", false, internal_errors.NotFound(target.Kind())
	}
	if author == nil {
		return "", false, nil
	}
	if _, ok := m.exp[*author]; !ok {
		return "", false, nil
	}
	return *author, true, nil
}

type memorySnapshot struct {
	exp   map[domain.UserId]int
	votes map[string]domain.Vote
}

func (m *MemoryTx) clone() memorySnapshot {
	s := memorySnapshot{exp: map[domain.UserId]int{}, votes: map[string]domain.Vote{}}
	for k, v := range m.exp {
		s.exp[k] = v
	}
	for k, v := range m.votes {
		s.votes[k] = v
	}
	return s
}

func (m *MemoryTx) restore(s memorySnapshot) {
	m.exp = s.exp
	m.votes = s.votes
}

func userPtr(id domain.UserId) *domain.UserId { return &id }
