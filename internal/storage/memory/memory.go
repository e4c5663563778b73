// Package memory provides an in-memory implementation of the storage
// interfaces. It is the default backend for single-session use: state lives
// exactly as long as the process.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fittrackr/fittrackr/internal/models"
	"github.com/fittrackr/fittrackr/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store with maps.
// A single mutex guards all mutating operations so the store stays safe when
// one instance is shared across sessions (the HTTP host does this).
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
	plans    map[string][]*models.PlanRecord
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: make(map[string]*models.Account),
		plans:    make(map[string][]*models.PlanRecord),
	}
}

// CreateUser inserts a new account, rejecting duplicate usernames.
func (s *Store) CreateUser(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Username]; exists {
		return storage.ErrDuplicateUsername
	}
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}

	stored := *account
	s.accounts[account.Username] = &stored
	return nil
}

// GetUser retrieves an account by username.
func (s *Store) GetUser(_ context.Context, username string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	// Copy so callers cannot mutate stored state behind the lock.
	out := *account
	return &out, nil
}

// UpdateGoal replaces the goal on an existing account.
func (s *Store) UpdateGoal(_ context.Context, username string, goal models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[username]
	if !ok {
		return storage.ErrUserNotFound
	}
	account.Goal = goal
	return nil
}

// RecordPlan appends a plan to the owner's history.
// The owner must already exist; an unknown owner is a caller bug.
func (s *Store) RecordPlan(_ context.Context, record *models.PlanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[record.OwnerUsername]; !ok {
		return storage.ErrUserNotFound
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt == 0 {
		record.CreatedAt = time.Now().Unix()
	}

	stored := *record
	s.plans[record.OwnerUsername] = append(s.plans[record.OwnerUsername], &stored)
	return nil
}

// ListPlans returns the owner's plans in generation order.
func (s *Store) ListPlans(_ context.Context, username string) ([]*models.PlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.plans[username]
	out := make([]*models.PlanRecord, len(records))
	for i, r := range records {
		copied := *r
		out[i] = &copied
	}
	return out, nil
}

// Close is a no-op; there is nothing to release.
func (s *Store) Close() error {
	return nil
}
