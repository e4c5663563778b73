// Package storage provides abstractions for account and plan persistence.
package storage

import (
	"context"
	"errors"

	"github.com/fittrackr/fittrackr/internal/models"
)

var (
	// ErrDuplicateUsername is returned when registering a username that is
	// already taken. There is deliberately no overwrite path.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrUserNotFound is returned when looking up an unknown username.
	// Callers must handle absence explicitly; stores never panic on a miss.
	ErrUserNotFound = errors.New("user not found")
)

// UserStore defines the interface for account persistence.
// This abstraction allows swapping storage backends (in-memory, SQLite, etc.)
// without changing the auth or session layers.
type UserStore interface {
	// CreateUser persists a new account.
	// Returns ErrDuplicateUsername if the username is already taken;
	// last-write-wins is never allowed.
	CreateUser(ctx context.Context, account *models.Account) error

	// GetUser retrieves an account by username.
	// Returns ErrUserNotFound if no such account exists.
	GetUser(ctx context.Context, username string) (*models.Account, error)

	// UpdateGoal replaces the stored goal for an existing account.
	// Returns ErrUserNotFound if the account does not exist.
	UpdateGoal(ctx context.Context, username string, goal models.Goal) error
}

// PlanStore defines the interface for per-user plan history.
type PlanStore interface {
	// RecordPlan appends a generated plan to the owner's history.
	// The owner must already exist; ErrUserNotFound on an unknown owner
	// indicates a caller bug, not a user-facing condition.
	// The record's ID and CreatedAt are populated by the store.
	RecordPlan(ctx context.Context, record *models.PlanRecord) error

	// ListPlans returns the owner's plans in generation order.
	// An empty history yields an empty slice, not an error.
	ListPlans(ctx context.Context, username string) ([]*models.PlanRecord, error)
}

// Store combines account and plan persistence behind one backend.
type Store interface {
	UserStore
	PlanStore

	// Close releases any resources held by the store.
	Close() error
}
