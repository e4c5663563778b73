// Package plan provides the polymorphic plan generators.
//
// A Plan is anything that can render itself as text. The set of implementers
// is small and closed (strength workout, vegan meal); new kinds are added by
// introducing a new implementer and extending New, with no change to calling
// code.
package plan

import (
	"errors"
	"fmt"

	"github.com/fittrackr/fittrackr/internal/models"
)

// ErrUnknownPlanKind is returned by New for a kind it has no generator for.
var ErrUnknownPlanKind = errors.New("unknown plan kind")

// Plan is the capability shared by all plan generators.
type Plan interface {
	// GenerateText renders the plan description shown to the user.
	GenerateText() string

	// Kind identifies which generator this is.
	Kind() models.PlanKind

	// Label is the display name the plan was created under.
	Label() string

	// Duration is the plan length in the kind's unit.
	Duration() int
}

// StrengthPlan is a weekly strength workout built around the canonical
// compound lifts.
type StrengthPlan struct {
	label         string
	durationWeeks int
}

// NewStrengthPlan creates a strength plan lasting durationWeeks weeks.
func NewStrengthPlan(label string, durationWeeks int) *StrengthPlan {
	return &StrengthPlan{label: label, durationWeeks: durationWeeks}
}

func (p *StrengthPlan) GenerateText() string {
	return fmt.Sprintf("Strength Plan: %s - Squats, Deadlifts, Bench Press for %d weeks",
		p.label, p.durationWeeks)
}

func (p *StrengthPlan) Kind() models.PlanKind { return models.PlanStrength }
func (p *StrengthPlan) Label() string         { return p.label }
func (p *StrengthPlan) Duration() int         { return p.durationWeeks }

// VeganMealPlan is a daily plant-based meal plan.
type VeganMealPlan struct {
	label        string
	durationDays int
}

// NewVeganMealPlan creates a vegan meal plan lasting durationDays days.
func NewVeganMealPlan(label string, durationDays int) *VeganMealPlan {
	return &VeganMealPlan{label: label, durationDays: durationDays}
}

func (p *VeganMealPlan) GenerateText() string {
	return fmt.Sprintf("Vegan Meal Plan: %s - Tofu Stir-fry, Lentil Soup for %d days",
		p.label, p.durationDays)
}

func (p *VeganMealPlan) Kind() models.PlanKind { return models.PlanVeganMeal }
func (p *VeganMealPlan) Label() string         { return p.label }
func (p *VeganMealPlan) Duration() int         { return p.durationDays }

// New constructs the plan variant for kind. Pure construction: no side
// effects, and the only failure mode is an unknown kind. Callers are expected
// to pass a positive duration.
func New(kind models.PlanKind, label string, duration int) (Plan, error) {
	switch kind {
	case models.PlanStrength:
		return NewStrengthPlan(label, duration), nil
	case models.PlanVeganMeal:
		return NewVeganMealPlan(label, duration), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlanKind, kind)
	}
}

// Record snapshots a generated plan into an immutable history record for
// owner. The store fills in ID and CreatedAt.
func Record(owner string, p Plan) *models.PlanRecord {
	return &models.PlanRecord{
		OwnerUsername: owner,
		Kind:          p.Kind(),
		Label:         p.Label(),
		Duration:      p.Duration(),
		RenderedText:  p.GenerateText(),
	}
}
