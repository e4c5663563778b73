package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fittrackr/fittrackr/internal/models"
	"github.com/fittrackr/fittrackr/internal/storage"
)

// RecordPlan appends a generated plan to the owner's history.
// Generates the record ID and CreatedAt if not set.
func (s *SQLiteStore) RecordPlan(ctx context.Context, record *models.PlanRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt == 0 {
		record.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO plans (id, owner_username, kind, label, duration, rendered_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.OwnerUsername,
		string(record.Kind),
		record.Label,
		record.Duration,
		record.RenderedText,
		record.CreatedAt,
	)

	// The owner foreign key makes an unknown owner a constraint violation.
	if isConstraintViolation(err) {
		return storage.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to record plan: %w", err)
	}

	return nil
}

// ListPlans returns the owner's plans in generation order.
func (s *SQLiteStore) ListPlans(ctx context.Context, username string) ([]*models.PlanRecord, error) {
	query := `
		SELECT id, owner_username, kind, label, duration, rendered_text, created_at
		FROM plans
		WHERE owner_username = ?
		ORDER BY rowid
	`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	records := make([]*models.PlanRecord, 0)
	for rows.Next() {
		record := &models.PlanRecord{}
		var kind string
		if err := rows.Scan(
			&record.ID,
			&record.OwnerUsername,
			&kind,
			&record.Label,
			&record.Duration,
			&record.RenderedText,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		record.Kind = models.PlanKind(kind)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plans: %w", err)
	}

	return records, nil
}
