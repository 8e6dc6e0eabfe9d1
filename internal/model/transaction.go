// Package model defines domain types for wisespend ledgers and derived metrics.
package model

import (
	"strings"
	"time"
)

// TxType distinguishes money coming in from money going out.
type TxType string

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// Category is one of a fixed set of spend categories.
type Category string

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Groceries     Category = "Groceries"
	Shopping      Category = "Shopping"
	Bills         Category = "Bills"
	Health        Category = "Health"
	Entertainment Category = "Entertainment"
	Salary        Category = "Salary"
	Bonus         Category = "Bonus"
	Savings       Category = "Savings"
	Other         Category = "Other"
)

// Categories lists every category in display order. Ranking ties are
// broken by this order.
var Categories = []Category{
	Food, Transport, Groceries, Shopping, Bills, Health,
	Entertainment, Salary, Bonus, Savings, Other,
}

// NormalizeCategory maps empty or unknown values to Other. Matching is
// case-insensitive so imported ledgers with "food" still land in Food.
func NormalizeCategory(raw string) Category {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(raw)) {
			return c
		}
	}
	return Other
}

// Intent tags why an expense happened. Empty means untagged.
type Intent string

const (
	IntentEssential Intent = "Essential"
	IntentComfort   Intent = "Comfort"
	IntentImpulse   Intent = "Impulse"
)

// Transaction is an immutable ledger record. Amounts are whole currency units.
type Transaction struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	Type      TxType    `json:"type"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	Note      string    `json:"note,omitempty"`
	Intent    Intent    `json:"intent,omitempty"`
}

// IsExpense reports whether the transaction reduces spendable money.
func (t Transaction) IsExpense() bool {
	return t.Type == Expense
}

// Profile holds the user's monthly plan.
type Profile struct {
	Income               int64 `json:"income"`
	FixedExpenses        int64 `json:"fixedExpenses"`
	MonthlySubscriptions int64 `json:"monthlySubscriptions"`
	SavingsGoal          int64 `json:"savingsGoal"`
}

// Configured reports whether an income has been entered.
func (p Profile) Configured() bool {
	return p.Income > 0
}

// Cadence is the recurrence period of a repeating transaction.
type Cadence string

const (
	Daily   Cadence = "daily"
	Weekly  Cadence = "weekly"
	Monthly Cadence = "monthly"
	Yearly  Cadence = "yearly"
)

// ParseCadence returns the cadence named by s and whether it was recognized.
func ParseCadence(s string) (Cadence, bool) {
	switch Cadence(s) {
	case Daily, Weekly, Monthly, Yearly:
		return Cadence(s), true
	}
	return "", false
}

// Advance moves t forward by one cadence unit.
func (c Cadence) Advance(t time.Time) time.Time {
	switch c {
	case Daily:
		return t.AddDate(0, 0, 1)
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Yearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// RecurringRule describes a transaction that repeats on a cadence.
type RecurringRule struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Amount      int64     `json:"amount"`
	Category    Category  `json:"category"`
	Cadence     Cadence   `json:"cadence"`
	NextRunDate time.Time `json:"nextRunDate"`
	Active      bool      `json:"active"`
	Type        TxType    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}
