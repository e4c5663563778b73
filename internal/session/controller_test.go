package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fittrackr/fittrackr/internal/auth"
	"github.com/fittrackr/fittrackr/internal/models"
	"github.com/fittrackr/fittrackr/internal/payment"
	"github.com/fittrackr/fittrackr/internal/plan"
	"github.com/fittrackr/fittrackr/internal/storage/memory"
)

func newTestController() *Controller {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	return NewController(
		store,
		auth.NewPasswordAuthenticator(store),
		payment.NewStubGateway(logger),
		logger,
	)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	controller := newTestController()

	if controller.Authenticated() {
		t.Fatal("new session must start unauthenticated")
	}

	t.Run("register succeeds and stays unauthenticated", func(t *testing.T) {
		msg, err := controller.Handle(ctx, RegisterEvent{Username: "alice", Password: "pw1"})
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if !strings.Contains(msg, "Registered successfully") {
			t.Errorf("message = %q, want registration confirmation", msg)
		}
		if controller.Authenticated() {
			t.Error("register must not log the user in")
		}
	})

	t.Run("duplicate register is rejected", func(t *testing.T) {
		_, err := controller.Handle(ctx, RegisterEvent{Username: "alice", Password: "pw2"})
		if !errors.Is(err, auth.ErrUsernameExists) {
			t.Fatalf("register error = %v, want ErrUsernameExists", err)
		}
	})

	t.Run("wrong password keeps session unauthenticated", func(t *testing.T) {
		_, err := controller.Handle(ctx, LoginEvent{Username: "alice", Password: "wrong"})
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Fatalf("login error = %v, want ErrInvalidCredentials", err)
		}
		if controller.Authenticated() {
			t.Error("failed login must not authenticate")
		}
	})

	t.Run("login transitions to authenticated", func(t *testing.T) {
		msg, err := controller.Handle(ctx, LoginEvent{Username: "alice", Password: "pw1"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if msg != "Welcome, alice!" {
			t.Errorf("message = %q, want welcome text", msg)
		}
		if !controller.Authenticated() {
			t.Fatal("session must be authenticated after login")
		}
		if controller.CurrentUser().Username != "alice" {
			t.Errorf("CurrentUser = %q, want alice", controller.CurrentUser().Username)
		}
	})

	t.Run("set goal mutates the current account", func(t *testing.T) {
		if _, err := controller.Handle(ctx, SetGoalEvent{TargetWeight: 70.0, GoalType: models.GoalWeightLoss}); err != nil {
			t.Fatalf("set goal failed: %v", err)
		}
		goal := controller.CurrentUser().Goal
		if goal.TargetWeight != 70.0 || goal.Type != models.GoalWeightLoss {
			t.Errorf("Goal = %+v, want 70.0 weight_loss", goal)
		}
	})

	t.Run("subscribe charges the fixed premium amount", func(t *testing.T) {
		msg, err := controller.Handle(ctx, SubscribeEvent{})
		if err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}
		if msg != "Subscribed to Premium!" {
			t.Errorf("message = %q, want subscription confirmation", msg)
		}
	})

	t.Run("generate plan renders the strength template", func(t *testing.T) {
		text, err := controller.Handle(ctx, GeneratePlanEvent{
			Kind:     models.PlanStrength,
			Label:    "Strength Training",
			Duration: 4,
		})
		if err != nil {
			t.Fatalf("generate plan failed: %v", err)
		}
		want := "Strength Plan: Strength Training - Squats, Deadlifts, Bench Press for 4 weeks"
		if text != want {
			t.Errorf("text = %q, want %q", text, want)
		}

		records, err := controller.History(ctx)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("len(history) = %d, want 1", len(records))
		}
		if records[0].RenderedText != want {
			t.Errorf("recorded text = %q, want %q", records[0].RenderedText, want)
		}
	})
}

func TestUnauthenticatedEventsRejected(t *testing.T) {
	ctx := context.Background()
	controller := newTestController()

	events := []Event{
		SetGoalEvent{TargetWeight: 70.0, GoalType: models.GoalWeightLoss},
		SubscribeEvent{},
		GeneratePlanEvent{Kind: models.PlanStrength, Label: "X", Duration: 4},
	}
	for _, event := range events {
		if _, err := controller.Handle(ctx, event); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("Handle(%T) error = %v, want ErrNotAuthenticated", event, err)
		}
	}
	if _, err := controller.History(ctx); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("History error = %v, want ErrNotAuthenticated", err)
	}
}

func TestAuthenticatedRegisterAndLoginRejected(t *testing.T) {
	ctx := context.Background()
	controller := newTestController()

	mustHandle(t, controller, RegisterEvent{Username: "alice", Password: "pw1"})
	mustHandle(t, controller, LoginEvent{Username: "alice", Password: "pw1"})

	if _, err := controller.Handle(ctx, RegisterEvent{Username: "bob", Password: "pw"}); !errors.Is(err, ErrAlreadyAuthenticated) {
		t.Errorf("register error = %v, want ErrAlreadyAuthenticated", err)
	}
	if _, err := controller.Handle(ctx, LoginEvent{Username: "alice", Password: "pw1"}); !errors.Is(err, ErrAlreadyAuthenticated) {
		t.Errorf("login error = %v, want ErrAlreadyAuthenticated", err)
	}
}

func TestSetGoalOverwrites(t *testing.T) {
	controller := newTestController()

	mustHandle(t, controller, RegisterEvent{Username: "carol", Password: "pw"})
	mustHandle(t, controller, LoginEvent{Username: "carol", Password: "pw"})

	first := SetGoalEvent{TargetWeight: 70.0, GoalType: models.GoalWeightLoss}

	// Idempotent under repeated identical calls.
	mustHandle(t, controller, first)
	mustHandle(t, controller, first)
	if goal := controller.CurrentUser().Goal; goal.TargetWeight != 70.0 || goal.Type != models.GoalWeightLoss {
		t.Errorf("Goal = %+v, want 70.0 weight_loss", goal)
	}

	// A differing call overwrites wholesale; nothing of the old goal remains.
	mustHandle(t, controller, SetGoalEvent{TargetWeight: 85.0, GoalType: models.GoalMuscleGain})
	if goal := controller.CurrentUser().Goal; goal.TargetWeight != 85.0 || goal.Type != models.GoalMuscleGain {
		t.Errorf("Goal = %+v, want 85.0 muscle_gain", goal)
	}
}

func TestGeneratePlanHistoryOrder(t *testing.T) {
	ctx := context.Background()
	controller := newTestController()

	mustHandle(t, controller, RegisterEvent{Username: "dave", Password: "pw"})
	mustHandle(t, controller, LoginEvent{Username: "dave", Password: "pw"})

	kinds := []models.PlanKind{
		models.PlanStrength,
		models.PlanVeganMeal,
		models.PlanStrength,
		models.PlanVeganMeal,
	}
	for i, kind := range kinds {
		mustHandle(t, controller, GeneratePlanEvent{Kind: kind, Label: "P", Duration: i + 1})
	}

	records, err := controller.History(ctx)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(records) != len(kinds) {
		t.Fatalf("len(history) = %d, want %d", len(records), len(kinds))
	}
	for i, r := range records {
		if r.Kind != kinds[i] {
			t.Errorf("history[%d].Kind = %q, want %q", i, r.Kind, kinds[i])
		}
		if r.Duration != i+1 {
			t.Errorf("history[%d].Duration = %d, want %d", i, r.Duration, i+1)
		}
	}
}

func TestGeneratePlanUnknownKind(t *testing.T) {
	ctx := context.Background()
	controller := newTestController()

	mustHandle(t, controller, RegisterEvent{Username: "erin", Password: "pw"})
	mustHandle(t, controller, LoginEvent{Username: "erin", Password: "pw"})

	_, err := controller.Handle(ctx, GeneratePlanEvent{Kind: models.PlanKind("keto"), Label: "Z", Duration: 2})
	if !errors.Is(err, plan.ErrUnknownPlanKind) {
		t.Fatalf("Handle error = %v, want ErrUnknownPlanKind", err)
	}

	records, err := controller.History(ctx)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(history) = %d, want 0 after failed generation", len(records))
	}
}

func mustHandle(t *testing.T, c *Controller, event Event) string {
	t.Helper()
	msg, err := c.Handle(context.Background(), event)
	if err != nil {
		t.Fatalf("Handle(%T) failed: %v", event, err)
	}
	return msg
}
