package authflowrepo

import (
	"errors"
	"sync"

	apperrors "github.com/prosthetix/reports-platform/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu     sync.Mutex
	states map[string]*PendingLogin
}

// NewInMemoryRepo creates a new in-memory pending-login repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		states: make(map[string]*PendingLogin),
	}
}

// Upsert stores or updates a pending login attempt
func (r *InMemoryRepo) Upsert(state string, pending *PendingLogin) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if pending == nil {
		return errors.New("pending login cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to prevent external modifications
	r.states[state] = &PendingLogin{
		CodeVerifier: pending.CodeVerifier,
		CreatedAt:    pending.CreatedAt,
	}

	return nil
}

// Consume retrieves and removes a pending login under a single lock
func (r *InMemoryRepo) Consume(state string) (*PendingLogin, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pending, exists := r.states[state]
	if !exists {
		return nil, apperrors.ErrStateNotFound
	}
	delete(r.states, state)

	return pending, nil
}
