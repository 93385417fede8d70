package domain

import (
	"strconv"
	"strings"
	"time"
)

type AccountID string

type Account struct {
	ID        AccountID
	Name      string
	Email     string
	PlanID    PlanID
	PlanName  string
	CreatedAt time.Time
	Status    string
}

// HasPlan reports whether the account references a plan by ID or by name.
func (a Account) HasPlan() bool {
	return strings.TrimSpace(string(a.PlanID)) != "" || strings.TrimSpace(a.PlanName) != ""
}

// IsActive accepts both the English and the Portuguese labels stored by the dashboard.
func (a Account) IsActive() bool {
	switch strings.ToLower(strings.TrimSpace(a.Status)) {
	case "active", "ativo":
		return true
	default:
		return false
	}
}

// NextAccountID returns one past the highest numeric account ID. Gaps left by removed accounts
// are not filled, so stored notices keep pointing at the account they were raised for.
func NextAccountID(accounts []Account) AccountID {
	highest := 0
	for _, account := range accounts {
		n, err := strconv.Atoi(strings.TrimSpace(string(account.ID)))
		if err == nil && n > highest {
			highest = n
		}
	}

	return AccountID(strconv.Itoa(highest + 1))
}
