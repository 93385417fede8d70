package ports

import (
	"context"

	"github.com/bnema/pabx-entitlements/internal/domain"
)

type PlanRepository interface {
	GetByID(ctx context.Context, id domain.PlanID) (domain.PlanDefinition, error)
	List(ctx context.Context) (domain.PlanCatalog, error)
	Save(ctx context.Context, plan domain.PlanDefinition) error
	Delete(ctx context.Context, id domain.PlanID) error
}
