package toml

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/bnema/pabx-entitlements/internal/ports"
	"github.com/spf13/viper"
)

const (
	plansPathKey  = "plans.path"
	plansFileName = "plans.toml"
	plansKind     = "plans"
)

type PlanRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.PlanRepository = (*PlanRepository)(nil)

func NewPlanRepository(cfg *viper.Viper) (*PlanRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path, err := resolvePath(cfg, plansPathKey, plansFileName)
	if err != nil {
		return nil, err
	}

	return &PlanRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *PlanRepository) Save(ctx context.Context, plan domain.PlanDefinition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toPlanSchema(plan)
	updated := false
	for i := range file.Plans {
		if file.Plans[i].ID == encoded.ID {
			file.Plans[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Plans = append(file.Plans, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeTOMLFile(r.path, file); err != nil {
		return fmt.Errorf("write plans file: %w", err)
	}

	return nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id domain.PlanID) (domain.PlanDefinition, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlanDefinition{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.PlanDefinition{}, err
	}

	for _, entry := range file.Plans {
		if entry.ID == string(id) {
			return fromPlanSchema(entry), nil
		}
	}

	return domain.PlanDefinition{}, domain.ErrPlanNotFound
}

// List returns the stored plans in file order. An absent file yields an empty catalog.
func (r *PlanRepository) List(ctx context.Context) (domain.PlanCatalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	catalog := make(domain.PlanCatalog, 0, len(file.Plans))
	for _, entry := range file.Plans {
		catalog = append(catalog, fromPlanSchema(entry))
	}

	return catalog, nil
}

func (r *PlanRepository) Delete(ctx context.Context, id domain.PlanID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Plans[:0]
	found := false
	for _, entry := range file.Plans {
		if entry.ID == string(id) {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return domain.ErrPlanNotFound
	}
	file.Plans = kept

	if err := writeTOMLFile(r.path, file); err != nil {
		return fmt.Errorf("write plans file: %w", err)
	}

	return nil
}

func (r *PlanRepository) readSchema() (plansFileSchema, error) {
	var file plansFileSchema
	if err := readTOMLFile(r.path, plansKind, &file); err != nil {
		return plansFileSchema{}, err
	}
	if err := validateVersion(plansKind, file.Version); err != nil {
		return plansFileSchema{}, err
	}
	defaultVersion(&file.Version)

	return file, nil
}

func toPlanSchema(plan domain.PlanDefinition) planSchema {
	return planSchema{
		ID:             string(plan.ID),
		Name:           plan.Name,
		ValidityDays:   plan.ValidityDays,
		ExtensionLimit: plan.ExtensionLimit,
		PriceCents:     plan.PriceCents,
		Description:    plan.Description,
	}
}

func fromPlanSchema(plan planSchema) domain.PlanDefinition {
	return domain.PlanDefinition{
		ID:             domain.PlanID(plan.ID),
		Name:           plan.Name,
		ValidityDays:   plan.ValidityDays,
		ExtensionLimit: plan.ExtensionLimit,
		PriceCents:     plan.PriceCents,
		Description:    plan.Description,
	}
}
