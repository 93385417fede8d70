package domain

import (
	"fmt"
	"strings"
)

// DefaultValidityDays applies to accounts whose plan is missing or not in the catalog.
const DefaultValidityDays = 30

type PlanID string

type PlanDefinition struct {
	ID             PlanID
	Name           string
	ValidityDays   int
	ExtensionLimit int
	PriceCents     int64
	Description    string
}

func (p PlanDefinition) Validate() error {
	if strings.TrimSpace(string(p.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.ValidityDays <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidValidity, p.ValidityDays)
	}
	if p.ExtensionLimit < 0 {
		return fmt.Errorf("extension limit must not be negative")
	}

	return nil
}

type PlanCatalog []PlanDefinition

// DefaultPlanCatalog returns the built-in SIP tiers used before plans were managed in a catalog.
func DefaultPlanCatalog() PlanCatalog {
	return PlanCatalog{
		{ID: "sip-trial", Name: "SIP Trial", ValidityDays: 1, ExtensionLimit: 1},
		{ID: "sip-basico", Name: "SIP Basico", ValidityDays: 20, ExtensionLimit: 5},
		{ID: "sip-premium", Name: "SIP Premium", ValidityDays: 25, ExtensionLimit: 10},
		{ID: "sip-exclusive", Name: "SIP Exclusive", ValidityDays: 25, ExtensionLimit: 20},
	}
}

// ResolveValidityDays matches planName against the catalog by trimmed, case-insensitive name.
// It never fails: blank names, unknown plans and entries without a usable validity all yield
// DefaultValidityDays.
func ResolveValidityDays(planName string, catalog PlanCatalog) int {
	return catalog.ValidityDays("", planName)
}

// Resolve looks a plan up by its stable ID first and falls back to the legacy name match.
// Entries with a non-positive validity never match.
func (c PlanCatalog) Resolve(id PlanID, name string) (PlanDefinition, bool) {
	if trimmed := PlanID(strings.TrimSpace(string(id))); trimmed != "" {
		for _, plan := range c {
			if plan.ID == trimmed && plan.ValidityDays > 0 {
				return plan, true
			}
		}
	}

	wanted := normalizePlanName(name)
	if wanted == "" {
		return PlanDefinition{}, false
	}

	for _, plan := range c {
		if plan.ValidityDays <= 0 {
			continue
		}
		if normalizePlanName(plan.Name) == wanted {
			return plan, true
		}
	}

	return PlanDefinition{}, false
}

func (c PlanCatalog) ValidityDays(id PlanID, name string) int {
	if plan, ok := c.Resolve(id, name); ok {
		return plan.ValidityDays
	}

	return DefaultValidityDays
}

// WithFallback returns c followed by every base plan that shares neither an ID nor a normalized
// name with a plan in c. Plans in c take precedence.
func (c PlanCatalog) WithFallback(base PlanCatalog) PlanCatalog {
	merged := make(PlanCatalog, 0, len(c)+len(base))
	merged = append(merged, c...)

	ids := make(map[PlanID]struct{}, len(c))
	names := make(map[string]struct{}, len(c))
	for _, plan := range c {
		ids[plan.ID] = struct{}{}
		names[normalizePlanName(plan.Name)] = struct{}{}
	}

	for _, plan := range base {
		if _, ok := ids[plan.ID]; ok {
			continue
		}
		if _, ok := names[normalizePlanName(plan.Name)]; ok {
			continue
		}
		merged = append(merged, plan)
	}

	return merged
}

func normalizePlanName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
