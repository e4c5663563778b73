package models

// PlanKind identifies which generator produced a plan.
type PlanKind string

const (
	PlanStrength  PlanKind = "strength"
	PlanVeganMeal PlanKind = "vegan_meal"
)

// DurationUnit is the unit a plan's duration is measured in:
// weeks for strength plans, days for meal plans.
func (k PlanKind) DurationUnit() string {
	if k == PlanVeganMeal {
		return "days"
	}
	return "weeks"
}

// PlanRecord is an immutable snapshot of a generated plan, appended to the
// owner's history at generation time.
type PlanRecord struct {
	// ID is the unique identifier for the record (UUID format).
	// Populated by the store on insert.
	ID string

	// OwnerUsername references the account the plan was generated for.
	// Must name an existing account.
	OwnerUsername string

	// Kind says which generator produced the plan.
	Kind PlanKind

	// Label is the display name the plan was generated under
	// (e.g., "Strength Training").
	Label string

	// Duration is the plan length in the kind's unit
	// (weeks for strength, days for vegan meal).
	Duration int

	// RenderedText is the generated plan description shown to the user.
	RenderedText string

	// CreatedAt is the Unix timestamp when the plan was generated.
	CreatedAt int64
}
