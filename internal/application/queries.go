package application

import "github.com/bnema/pabx-entitlements/internal/domain"

type Status struct {
	Account    domain.Account
	Plan       *domain.PlanDefinition
	Expiration domain.ExpirationInfo
}

type PlanCount struct {
	Plan  string
	Count int
}

type Stats struct {
	Total         int
	Active        int
	Inactive      int
	NewLast30Days int
	Buckets       domain.StatusBuckets
	ByPlan        []PlanCount
}

type NotifyReport struct {
	Evaluated  int
	Skipped    int
	Created    int
	Duplicates int
	Failed     int
}
