package model

import "time"

// ContributionType says how a goal is funded.
type ContributionType string

const (
	ContributeMonthly  ContributionType = "monthly"
	ContributeFlexible ContributionType = "flexible"
)

// ParseContributionType returns the type named by s and whether it was
// recognized.
func ParseContributionType(s string) (ContributionType, bool) {
	switch ContributionType(s) {
	case ContributeMonthly, ContributeFlexible:
		return ContributionType(s), true
	}
	return "", false
}

// SavingsGoal is a named target, typically a purchase, saved towards
// separately from the monthly savings goal in the profile.
type SavingsGoal struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	TargetAmount     int64            `json:"targetAmount"`
	TargetDate       *time.Time       `json:"targetDate,omitempty"`
	CurrentSaved     int64            `json:"currentSaved"`
	ContributionType ContributionType `json:"contributionType"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// Contribution is one deposit towards a goal.
type Contribution struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goalId"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// GoalProgress is a goal with its derived progress at an instant.
type GoalProgress struct {
	Goal      SavingsGoal `json:"goal"`
	Ratio     float64     `json:"ratio"`
	Percent   int         `json:"percent"`
	Remaining int64       `json:"remaining"`
	Complete  bool        `json:"complete"`
	// Set only for goals with a target date.
	DaysLeft      *int   `json:"daysLeft,omitempty"`
	MonthlyNeeded *int64 `json:"monthlyNeeded,omitempty"`
	Overdue       bool   `json:"overdue"`
}
