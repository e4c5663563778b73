package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fittrackr/fittrackr/internal/models"
	"github.com/fittrackr/fittrackr/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "fittrackr-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateUser sets CreatedAt", func(t *testing.T) {
		account := &models.Account{Username: "alice", PasswordHash: "digest-1"}
		if err := store.CreateUser(ctx, account); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if account.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("CreateUser rejects duplicate username", func(t *testing.T) {
		dup := &models.Account{Username: "alice", PasswordHash: "digest-2"}
		if err := store.CreateUser(ctx, dup); !errors.Is(err, storage.ErrDuplicateUsername) {
			t.Fatalf("CreateUser error = %v, want ErrDuplicateUsername", err)
		}

		got, err := store.GetUser(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.PasswordHash != "digest-1" {
			t.Errorf("PasswordHash = %q, want original digest-1", got.PasswordHash)
		}
	})

	t.Run("GetUser returns ErrUserNotFound for unknown username", func(t *testing.T) {
		if _, err := store.GetUser(ctx, "nobody"); !errors.Is(err, storage.ErrUserNotFound) {
			t.Fatalf("GetUser error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("UpdateGoal round-trips the goal", func(t *testing.T) {
		goal := models.Goal{TargetWeight: 70, Type: models.GoalWeightLoss}
		if err := store.UpdateGoal(ctx, "alice", goal); err != nil {
			t.Fatalf("UpdateGoal failed: %v", err)
		}

		got, err := store.GetUser(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Goal != goal {
			t.Errorf("Goal = %+v, want %+v", got.Goal, goal)
		}

		if err := store.UpdateGoal(ctx, "nobody", goal); !errors.Is(err, storage.ErrUserNotFound) {
			t.Fatalf("UpdateGoal error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("RecordPlan and ListPlans preserve order", func(t *testing.T) {
		labels := []string{"first", "second", "third"}
		for i, label := range labels {
			record := &models.PlanRecord{
				OwnerUsername: "alice",
				Kind:          models.PlanStrength,
				Label:         label,
				Duration:      i + 1,
				RenderedText:  "text for " + label,
			}
			if err := store.RecordPlan(ctx, record); err != nil {
				t.Fatalf("RecordPlan failed: %v", err)
			}
			if record.ID == "" {
				t.Error("Expected record ID to be generated")
			}
		}

		records, err := store.ListPlans(ctx, "alice")
		if err != nil {
			t.Fatalf("ListPlans failed: %v", err)
		}
		if len(records) != len(labels) {
			t.Fatalf("len(records) = %d, want %d", len(records), len(labels))
		}
		for i, r := range records {
			if r.Label != labels[i] {
				t.Errorf("records[%d].Label = %q, want %q", i, r.Label, labels[i])
			}
			if r.Kind != models.PlanStrength {
				t.Errorf("records[%d].Kind = %q, want %q", i, r.Kind, models.PlanStrength)
			}
		}
	})

	t.Run("RecordPlan rejects unknown owner", func(t *testing.T) {
		record := &models.PlanRecord{
			OwnerUsername: "ghost",
			Kind:          models.PlanVeganMeal,
			Label:         "orphan",
			Duration:      3,
			RenderedText:  "text",
		}
		if err := store.RecordPlan(ctx, record); !errors.Is(err, storage.ErrUserNotFound) {
			t.Fatalf("RecordPlan error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("ListPlans on empty history returns empty slice", func(t *testing.T) {
		account := &models.Account{Username: "bob", PasswordHash: "h"}
		if err := store.CreateUser(ctx, account); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		records, err := store.ListPlans(ctx, "bob")
		if err != nil {
			t.Fatalf("ListPlans failed: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("len(records) = %d, want 0", len(records))
		}
	})
}
