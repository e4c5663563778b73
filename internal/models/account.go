package models

// GoalType identifies what the user is training toward.
type GoalType string

const (
	GoalWeightLoss GoalType = "weight_loss"
	GoalMuscleGain GoalType = "muscle_gain"
)

// Valid reports whether the goal type is one of the known values.
func (g GoalType) Valid() bool {
	return g == GoalWeightLoss || g == GoalMuscleGain
}

// Goal is a user's fitness target. The zero value means "unset".
type Goal struct {
	// TargetWeight is the target body weight in kilograms.
	// Range checks ([40, 200]) happen at the input boundary, not here.
	TargetWeight float64

	// Type says whether the user wants to lose weight or gain muscle.
	Type GoalType
}

// Set reports whether the goal has been configured.
func (g Goal) Set() bool {
	return g.Type != ""
}

// Account represents a registered user.
type Account struct {
	// Username is the unique identifier for the account.
	// Immutable after registration.
	Username string

	// PasswordHash is the bcrypt digest of the user's password.
	// The raw password is never stored.
	PasswordHash string

	// Goal is the user's current fitness goal, if any.
	// Overwritten wholesale by SetGoal.
	Goal Goal

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// SetGoal replaces the account's goal. Any previous goal is discarded.
func (a *Account) SetGoal(targetWeight float64, goalType GoalType) {
	a.Goal = Goal{TargetWeight: targetWeight, Type: goalType}
}
