package model

import "time"

// EventType groups insight events for display and notification routing.
type EventType string

const (
	EventWarning   EventType = "warning"
	EventBudget    EventType = "budget"
	EventFatigue   EventType = "fatigue"
	EventRecurring EventType = "recurring"
	EventInsight   EventType = "insight"
)

// InsightEvent is produced by the detectors. Key identifies the alert for
// debouncing; events with the same key share a cooldown.
type InsightEvent struct {
	Key      string    `json:"key"`
	Type     EventType `json:"type"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Category Category  `json:"category,omitempty"`
}

// Notification is a persisted, user-visible record of an emitted event.
type Notification struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

// ConfidenceScore is the composite financial health heuristic.
type ConfidenceScore struct {
	Score     int       `json:"score"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// FatigueResult reports whether spending frequency is unusually high.
type FatigueResult struct {
	Detected bool `json:"detected"`
	Count    int  `json:"count"`
}

// WhatIfStatus is the advice level for a hypothetical spend.
type WhatIfStatus string

const (
	StatusSafe       WhatIfStatus = "SAFE"
	StatusRisky      WhatIfStatus = "RISKY"
	StatusNotAdvised WhatIfStatus = "NOT ADVISED"
)

// WhatIfValues holds the figures a hypothetical spend would move.
type WhatIfValues struct {
	SafeSpendToday     int64 `json:"safeSpendToday"`
	RemainingSpendable int64 `json:"remainingSpendable"`
	WeekSpent          int64 `json:"weekSpent"`
	SpentThisMonth     int64 `json:"spentThisMonth"`
	CategorySpent      int64 `json:"categorySpent"`
}

// WhatIfResult is the outcome of a speculative spend. It is never persisted.
type WhatIfResult struct {
	Amount        int64        `json:"amount"`
	Category      Category     `json:"category"`
	Deltas        WhatIfValues `json:"deltas"`
	NewValues     WhatIfValues `json:"newValues"`
	GoalDelayDays int          `json:"goalDelayDays"`
	Status        WhatIfStatus `json:"status"`

	// BudgetRatio is the category's spent/cap after the spend, 0 without a budget.
	BudgetRatio   float64 `json:"budgetRatio"`
	ExceedsBudget bool    `json:"exceedsBudget"`
}
