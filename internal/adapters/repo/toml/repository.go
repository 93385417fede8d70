package toml

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/bnema/pabx-entitlements/internal/ports"
	"github.com/spf13/viper"
)

const (
	accountsPathKey  = "accounts.path"
	accountsFileName = "accounts.toml"
	accountsKind     = "accounts"
)

type Repository struct {
	accountsPath string
	location     *time.Location
	mu           *sync.RWMutex
}

var _ ports.AccountRepository = (*Repository)(nil)

// NewRepository stores accounts at accounts.path. Date-only created_at values are read in
// location, or time.Local when location is nil.
func NewRepository(cfg *viper.Viper, location *time.Location) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if location == nil {
		location = time.Local
	}

	accountsPath, err := resolvePath(cfg, accountsPathKey, accountsFileName)
	if err != nil {
		return nil, err
	}

	return &Repository{accountsPath: accountsPath, location: location, mu: lockForPath(accountsPath)}, nil
}

func (r *Repository) Save(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toAccountSchema(account)
	updated := false
	for i := range file.Accounts {
		if file.Accounts[i].ID == encoded.ID {
			file.Accounts[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Accounts = append(file.Accounts, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeTOMLFile(r.accountsPath, file); err != nil {
		return fmt.Errorf("write accounts file: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Account{}, err
	}

	for _, entry := range file.Accounts {
		if entry.ID == string(id) {
			return r.fromAccountSchema(entry), nil
		}
	}

	return domain.Account{}, domain.ErrAccountNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, entry := range file.Accounts {
		accounts = append(accounts, r.fromAccountSchema(entry))
	}

	return accounts, nil
}

func (r *Repository) Delete(ctx context.Context, id domain.AccountID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Accounts[:0]
	found := false
	for _, entry := range file.Accounts {
		if entry.ID == string(id) {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return domain.ErrAccountNotFound
	}
	file.Accounts = kept

	if err := writeTOMLFile(r.accountsPath, file); err != nil {
		return fmt.Errorf("write accounts file: %w", err)
	}

	return nil
}

func (r *Repository) readSchema() (accountsFileSchema, error) {
	var file accountsFileSchema
	if err := readTOMLFile(r.accountsPath, accountsKind, &file); err != nil {
		return accountsFileSchema{}, err
	}
	if err := validateVersion(accountsKind, file.Version); err != nil {
		return accountsFileSchema{}, err
	}
	defaultVersion(&file.Version)

	return file, nil
}

func toAccountSchema(account domain.Account) accountSchema {
	return accountSchema{
		ID:        string(account.ID),
		Name:      account.Name,
		Email:     account.Email,
		PlanID:    string(account.PlanID),
		PlanName:  account.PlanName,
		CreatedAt: formatTime(account.CreatedAt),
		Status:    account.Status,
	}
}

// fromAccountSchema leaves CreatedAt zero when the stored value cannot be parsed, which the
// evaluator reports as an unknown expiration.
func (r *Repository) fromAccountSchema(account accountSchema) domain.Account {
	var createdAt time.Time
	if account.CreatedAt != "" {
		if parsed, err := domain.ParseCreatedAt(account.CreatedAt, r.location); err == nil {
			createdAt = parsed
		}
	}

	return domain.Account{
		ID:        domain.AccountID(account.ID),
		Name:      account.Name,
		Email:     account.Email,
		PlanID:    domain.PlanID(account.PlanID),
		PlanName:  account.PlanName,
		CreatedAt: createdAt,
		Status:    account.Status,
	}
}
