package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fittrackr/fittrackr/internal/models"
	"github.com/fittrackr/fittrackr/internal/storage"
)

// CreateUser inserts a new account into the database.
// Returns storage.ErrDuplicateUsername if the username is already taken.
func (s *SQLiteStore) CreateUser(ctx context.Context, account *models.Account) error {
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO accounts (username, password_hash, goal_target_weight, goal_type, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	var weight sql.NullFloat64
	var goalType sql.NullString
	if account.Goal.Set() {
		weight = sql.NullFloat64{Float64: account.Goal.TargetWeight, Valid: true}
		goalType = sql.NullString{String: string(account.Goal.Type), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		account.Username,
		account.PasswordHash,
		weight,
		goalType,
		account.CreatedAt,
	)

	if isUniqueViolation(err) {
		return storage.ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetUser retrieves an account by username.
// Returns storage.ErrUserNotFound if no such account exists.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT username, password_hash, goal_target_weight, goal_type, created_at
		FROM accounts
		WHERE username = ?
	`

	account := &models.Account{}
	var weight sql.NullFloat64
	var goalType sql.NullString
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&account.Username,
		&account.PasswordHash,
		&weight,
		&goalType,
		&account.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if goalType.Valid {
		account.Goal = models.Goal{
			TargetWeight: weight.Float64,
			Type:         models.GoalType(goalType.String),
		}
	}

	return account, nil
}

// UpdateGoal replaces the stored goal for an existing account.
func (s *SQLiteStore) UpdateGoal(ctx context.Context, username string, goal models.Goal) error {
	query := `
		UPDATE accounts
		SET goal_target_weight = ?, goal_type = ?
		WHERE username = ?
	`

	result, err := s.db.ExecContext(ctx, query, goal.TargetWeight, string(goal.Type), username)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check goal update: %w", err)
	}
	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}
