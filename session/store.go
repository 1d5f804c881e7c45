// Package session holds the per-user conversation state: the listing
// creation draft, the search filter draft and the step each flow is on.
// State lives in process memory behind the Store interface so a durable
// implementation can be swapped in without touching call sites.
package session

import (
	"errors"
	"sync"
	"time"
)

// ErrNoSession is returned when an input arrives for a user with no
// in-progress flow. The user is told to restart.
var ErrNoSession = errors.New("no session in progress")

// ErrWrongStep is returned when an input does not match the flow's
// current step.
var ErrWrongStep = errors.New("input does not match current step")

// InvalidInput is a recoverable validation failure: the step is
// re-prompted with the reason.
type InvalidInput struct {
	Reason string
}

func (e *InvalidInput) Error() string { return e.Reason }

func invalid(reason string) error { return &InvalidInput{Reason: reason} }

// Store keeps per-user flow state. The creation and search namespaces
// are independent: starting one flow never touches the other.
type Store interface {
	StartCreation(userID int64) *CreationState
	Creation(userID int64) (*CreationState, error)
	ClearCreation(userID int64)

	StartSearch(userID int64) *SearchState
	Search(userID int64) (*SearchState, error)
	ClearSearch(userID int64)

	// Sweep drops sessions idle longer than maxIdle and returns how
	// many were dropped. maxIdle <= 0 is a no-op.
	Sweep(maxIdle time.Duration) int
}

type MemoryStore struct {
	mu        sync.Mutex
	creations map[int64]*CreationState
	searches  map[int64]*SearchState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		creations: make(map[int64]*CreationState),
		searches:  make(map[int64]*SearchState),
	}
}

func (m *MemoryStore) StartCreation(userID int64) *CreationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := newCreationState()
	m.creations[userID] = s
	return s
}

func (m *MemoryStore) Creation(userID int64) (*CreationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.creations[userID]
	if !ok {
		return nil, ErrNoSession
	}
	s.touched = time.Now()
	return s, nil
}

func (m *MemoryStore) ClearCreation(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.creations, userID)
}

func (m *MemoryStore) StartSearch(userID int64) *SearchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := newSearchState()
	m.searches[userID] = s
	return s
}

func (m *MemoryStore) Search(userID int64) (*SearchState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.searches[userID]
	if !ok {
		return nil, ErrNoSession
	}
	s.touched = time.Now()
	return s, nil
}

func (m *MemoryStore) ClearSearch(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.searches, userID)
}

func (m *MemoryStore) Sweep(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	dropped := 0
	for id, s := range m.creations {
		if s.touched.Before(cutoff) {
			delete(m.creations, id)
			dropped++
		}
	}
	for id, s := range m.searches {
		if s.touched.Before(cutoff) {
			delete(m.searches, id)
			dropped++
		}
	}
	return dropped
}
