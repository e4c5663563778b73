package session

import "github.com/fittrackr/fittrackr/internal/models"

// Event is one external UI action delivered to the controller. The set of
// implementers is closed; Handle dispatches over it.
type Event interface {
	isEvent()
}

// RegisterEvent asks for a new account. Allowed only while unauthenticated.
type RegisterEvent struct {
	Username string
	Password string
}

// LoginEvent authenticates and, on success, moves the session to the
// authenticated state.
type LoginEvent struct {
	Username string
	Password string
}

// SetGoalEvent replaces the current user's fitness goal.
// The target weight range is validated at the input boundary, not here.
type SetGoalEvent struct {
	TargetWeight float64
	GoalType     models.GoalType
}

// SubscribeEvent charges the fixed premium subscription.
type SubscribeEvent struct{}

// GeneratePlanEvent generates a plan, records it in the user's history, and
// yields the rendered text.
type GeneratePlanEvent struct {
	Kind     models.PlanKind
	Label    string
	Duration int
}

func (RegisterEvent) isEvent()     {}
func (LoginEvent) isEvent()        {}
func (SetGoalEvent) isEvent()      {}
func (SubscribeEvent) isEvent()    {}
func (GeneratePlanEvent) isEvent() {}
