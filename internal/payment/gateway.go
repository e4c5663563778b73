// Package payment defines the payment gateway boundary.
//
// The only implementation here is a stub that always succeeds. A production
// replacement would expose success/decline/timeout outcomes behind the same
// interface.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidAmount is returned for charges of zero or negative amounts.
var ErrInvalidAmount = errors.New("charge amount must be positive")

// Gateway defines the interface for payment processing.
type Gateway interface {
	// Charge bills amount to the user's payment method for planType.
	// Returns a human-readable receipt on success.
	Charge(ctx context.Context, username string, amount float64, planType string) (string, error)
}

// StubGateway implements Gateway without touching any real payment provider.
// Every well-formed charge succeeds and leaves no state behind.
type StubGateway struct {
	logger *slog.Logger
}

// NewStubGateway creates a stub gateway.
func NewStubGateway(logger *slog.Logger) *StubGateway {
	return &StubGateway{logger: logger}
}

// Charge validates the amount and reports success.
func (g *StubGateway) Charge(_ context.Context, username string, amount float64, planType string) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	g.logger.Info("Payment processed", "username", username, "amount", amount, "plan_type", planType)
	return fmt.Sprintf("Processed payment of $%.2f for %s for user %s", amount, planType, username), nil
}
