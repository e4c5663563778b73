// Package session implements the single-session controller: a small state
// machine that owns the "current authenticated user" pointer and orchestrates
// auth, goals, payment, and plan generation in response to UI events.
//
// One Controller serves one logical session. Events are processed one at a
// time to completion; the controller itself does no locking. A host that
// shares stores across sessions relies on the stores' own guarding.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fittrackr/fittrackr/internal/auth"
	"github.com/fittrackr/fittrackr/internal/metrics"
	"github.com/fittrackr/fittrackr/internal/models"
	"github.com/fittrackr/fittrackr/internal/payment"
	"github.com/fittrackr/fittrackr/internal/plan"
	"github.com/fittrackr/fittrackr/internal/storage"
)

const (
	// PremiumAmount is the fixed monthly price of the premium subscription.
	PremiumAmount = 9.99

	// PremiumLabel is the plan label sent to the payment gateway.
	PremiumLabel = "Premium"
)

var (
	// ErrNotAuthenticated is returned for events that require a logged-in
	// user while the session is unauthenticated.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrAlreadyAuthenticated is returned for register/login events while a
	// user is already logged in. There is no logout; the session ends with
	// teardown.
	ErrAlreadyAuthenticated = errors.New("already logged in")
)

// Controller is the per-session orchestrator. It is created at session start
// and discarded at session end; there are no ambient globals.
type Controller struct {
	store         storage.Store
	authenticator auth.Authenticator
	gateway       payment.Gateway
	logger        *slog.Logger

	// current is the logged-in account, nil while unauthenticated.
	current *models.Account
}

// NewController creates a session controller over the given collaborators.
func NewController(store storage.Store, authenticator auth.Authenticator, gateway payment.Gateway, logger *slog.Logger) *Controller {
	return &Controller{
		store:         store,
		authenticator: authenticator,
		gateway:       gateway,
		logger:        logger,
	}
}

// Authenticated reports whether a user is logged in.
func (c *Controller) Authenticated() bool {
	return c.current != nil
}

// CurrentUser returns the logged-in account, or nil while unauthenticated.
func (c *Controller) CurrentUser() *models.Account {
	return c.current
}

// Handle dispatches one UI event and returns the display string for the UI.
// Recoverable failures (duplicate username, invalid credentials, unknown plan
// kind) come back as errors for the UI to re-prompt on.
func (c *Controller) Handle(ctx context.Context, event Event) (string, error) {
	switch e := event.(type) {
	case RegisterEvent:
		return c.Register(ctx, e.Username, e.Password)
	case LoginEvent:
		return c.Login(ctx, e.Username, e.Password)
	case SetGoalEvent:
		return c.SetGoal(ctx, e.TargetWeight, e.GoalType)
	case SubscribeEvent:
		return c.Subscribe(ctx)
	case GeneratePlanEvent:
		return c.GeneratePlan(ctx, e.Kind, e.Label, e.Duration)
	default:
		return "", fmt.Errorf("unhandled event type %T", event)
	}
}

// Register creates a new account. The session stays unauthenticated; the user
// logs in afterwards.
func (c *Controller) Register(ctx context.Context, username, password string) (string, error) {
	if c.current != nil {
		return "", ErrAlreadyAuthenticated
	}

	if _, err := c.authenticator.Register(ctx, username, password); err != nil {
		c.logger.Warn("Registration failed", "username", username, "error", err)
		metrics.RecordRegistration("failure")
		return "", err
	}

	c.logger.Info("User registered", "username", username)
	metrics.RecordRegistration("success")
	return "Registered successfully! Please log in.", nil
}

// Login authenticates and transitions the session to the authenticated state.
// On failure the session stays unauthenticated.
func (c *Controller) Login(ctx context.Context, username, password string) (string, error) {
	if c.current != nil {
		return "", ErrAlreadyAuthenticated
	}

	account, err := c.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		c.logger.Warn("Login failed", "username", username)
		metrics.RecordLogin("failure")
		return "", err
	}

	c.current = account
	c.logger.Info("User logged in", "username", username)
	metrics.RecordLogin("success")
	return fmt.Sprintf("Welcome, %s!", username), nil
}

// SetGoal replaces the current user's goal wholesale. Repeated identical
// calls are idempotent; differing calls overwrite, never merge.
func (c *Controller) SetGoal(ctx context.Context, targetWeight float64, goalType models.GoalType) (string, error) {
	if c.current == nil {
		return "", ErrNotAuthenticated
	}

	goal := models.Goal{TargetWeight: targetWeight, Type: goalType}
	if err := c.store.UpdateGoal(ctx, c.current.Username, goal); err != nil {
		return "", fmt.Errorf("failed to update goal: %w", err)
	}
	c.current.SetGoal(targetWeight, goalType)

	c.logger.Info("Goal updated", "username", c.current.Username, "target_weight", targetWeight, "goal_type", goalType)
	return "Goals updated!", nil
}

// Subscribe charges the fixed premium subscription through the gateway.
func (c *Controller) Subscribe(ctx context.Context) (string, error) {
	if c.current == nil {
		return "", ErrNotAuthenticated
	}

	receipt, err := c.gateway.Charge(ctx, c.current.Username, PremiumAmount, PremiumLabel)
	if err != nil {
		metrics.RecordCharge("failure")
		return "", fmt.Errorf("payment failed: %w", err)
	}

	c.logger.Info("Subscription charged", "username", c.current.Username, "receipt", receipt)
	metrics.RecordCharge("success")
	return "Subscribed to Premium!", nil
}

// GeneratePlan builds the requested plan, appends it to the user's history,
// and returns the rendered text for display.
func (c *Controller) GeneratePlan(ctx context.Context, kind models.PlanKind, label string, duration int) (string, error) {
	if c.current == nil {
		return "", ErrNotAuthenticated
	}

	p, err := plan.New(kind, label, duration)
	if err != nil {
		return "", err
	}

	// The current user is a registered account, so recording cannot miss the
	// owner; if it does, that is a wiring bug and must surface.
	if err := c.store.RecordPlan(ctx, plan.Record(c.current.Username, p)); err != nil {
		return "", fmt.Errorf("plan history precondition violated for %q: %w", c.current.Username, err)
	}

	c.logger.Info("Plan generated", "username", c.current.Username, "kind", kind, "duration", duration)
	metrics.RecordPlanGenerated(string(kind))
	return p.GenerateText(), nil
}

// History returns the current user's plan records in generation order.
func (c *Controller) History(ctx context.Context) ([]*models.PlanRecord, error) {
	if c.current == nil {
		return nil, ErrNotAuthenticated
	}
	return c.store.ListPlans(ctx, c.current.Username)
}
