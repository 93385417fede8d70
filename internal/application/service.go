package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/bnema/pabx-entitlements/internal/logging"
	"github.com/bnema/pabx-entitlements/internal/ports"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidCommand = errors.New("invalid command")

const newAccountWindow = 30 * 24 * time.Hour

// Settings controls how entitlements are evaluated and reported.
type Settings struct {
	Location *time.Location
	Locale   domain.Locale
	Logger   *slog.Logger
}

type Service struct {
	accounts      ports.AccountRepository
	plans         ports.PlanRepository
	notifications ports.NotificationRepository
	clock         ports.Clock
	settings      Settings
	validate      *validator.Validate
}

func NewService(
	accounts ports.AccountRepository,
	plans ports.PlanRepository,
	notifications ports.NotificationRepository,
	clock ports.Clock,
	settings Settings,
) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.Logger == nil {
		settings.Logger = logging.Discard()
	}

	return &Service{
		accounts:      accounts,
		plans:         plans,
		notifications: notifications,
		clock:         clock,
		settings:      settings,
		validate:      validator.New(),
	}
}

func (s *Service) evaluateOptions() domain.EvaluateOptions {
	return domain.EvaluateOptions{
		Now:      s.clock.Now(),
		Location: s.settings.Location,
		Locale:   s.settings.Locale,
	}
}

// Catalog returns the stored plans followed by the built-in tiers they do not override, so
// accounts on a legacy tier keep resolving after new plans are stored.
func (s *Service) Catalog(ctx context.Context) (domain.PlanCatalog, error) {
	stored, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	return stored.WithFallback(domain.DefaultPlanCatalog()), nil
}

// loadInputs fetches the accounts and the effective catalog concurrently.
func (s *Service) loadInputs(ctx context.Context) ([]domain.Account, domain.PlanCatalog, error) {
	var (
		accounts []domain.Account
		catalog  domain.PlanCatalog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.accounts.List(gctx)
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		catalog, err = s.Catalog(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return accounts, catalog, nil
}

func (s *Service) GetEntitlement(ctx context.Context, id domain.AccountID) (Status, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return Status{}, fmt.Errorf("get account by id: %w", err)
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return Status{}, err
	}

	return statusFromAccount(account, catalog, s.evaluateOptions()), nil
}

func (s *Service) GetEntitlementAll(ctx context.Context) ([]Status, error) {
	accounts, catalog, err := s.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	opts := s.evaluateOptions()
	statuses := make([]Status, 0, len(accounts))
	for _, account := range accounts {
		statuses = append(statuses, statusFromAccount(account, catalog, opts))
	}

	return statuses, nil
}

// ListExpired returns the statuses of expired accounts in store order.
func (s *Service) ListExpired(ctx context.Context) ([]Status, error) {
	accounts, catalog, err := s.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	opts := s.evaluateOptions()
	expired := domain.FilterExpired(accounts, catalog, opts)
	statuses := make([]Status, 0, len(expired))
	for _, account := range expired {
		statuses = append(statuses, statusFromAccount(account, catalog, opts))
	}

	return statuses, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	accounts, catalog, err := s.loadInputs(ctx)
	if err != nil {
		return Stats{}, err
	}

	opts := s.evaluateOptions()
	newSince := opts.Now.Add(-newAccountWindow)

	stats := Stats{
		Total:   len(accounts),
		Buckets: domain.BucketByStatus(accounts, catalog, opts),
	}

	perPlan := make(map[string]int)
	for _, account := range accounts {
		if account.IsActive() {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if !account.CreatedAt.IsZero() && !account.CreatedAt.Before(newSince) {
			stats.NewLast30Days++
		}
		perPlan[planLabel(account, catalog)]++
	}

	stats.ByPlan = make([]PlanCount, 0, len(perPlan))
	for plan, count := range perPlan {
		stats.ByPlan = append(stats.ByPlan, PlanCount{Plan: plan, Count: count})
	}
	sort.Slice(stats.ByPlan, func(i, j int) bool {
		if stats.ByPlan[i].Count != stats.ByPlan[j].Count {
			return stats.ByPlan[i].Count > stats.ByPlan[j].Count
		}
		return stats.ByPlan[i].Plan < stats.ByPlan[j].Plan
	})

	return stats, nil
}

func (s *Service) SaveAccount(ctx context.Context, cmd SaveAccountCommand) (domain.Account, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return domain.Account{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	id, err := s.accountIDFor(ctx, cmd.ID)
	if err != nil {
		return domain.Account{}, err
	}

	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, fmt.Errorf("get account by id: %w", err)
		}
		account = domain.Account{ID: id, Status: "ativo", CreatedAt: s.clock.Now()}
	}

	account.Name = strings.TrimSpace(cmd.Name)
	account.Email = strings.TrimSpace(cmd.Email)
	if cmd.Status != "" {
		account.Status = cmd.Status
	}

	if strings.TrimSpace(cmd.CreatedAt) != "" {
		createdAt, err := domain.ParseCreatedAt(cmd.CreatedAt, s.settings.Location)
		if err != nil {
			return domain.Account{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		account.CreatedAt = createdAt
	}

	if err := s.applyPlan(ctx, &account, cmd.PlanID, cmd.PlanName); err != nil {
		return domain.Account{}, err
	}

	if err := s.accounts.Save(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	return account, nil
}

func (s *Service) accountIDFor(ctx context.Context, raw string) (domain.AccountID, error) {
	requested := strings.TrimSpace(raw)
	if requested != "" && requested != "0" {
		if n, err := strconv.Atoi(requested); err == nil && n < 0 {
			return "", fmt.Errorf("%w: account id must not be negative, got %d", ErrInvalidCommand, n)
		}
		return domain.AccountID(requested), nil
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list accounts for id assignment: %w", err)
	}

	return domain.NextAccountID(accounts), nil
}

func (s *Service) SetAccountPlan(ctx context.Context, id domain.AccountID, planID, planName string) error {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}

	account.PlanID = ""
	account.PlanName = ""
	if err := s.applyPlan(ctx, &account, planID, planName); err != nil {
		return err
	}

	if err := s.accounts.Save(ctx, account); err != nil {
		return fmt.Errorf("save account plan: %w", err)
	}

	return nil
}

// RenewAccount moves the account onto planID and restarts its entitlement today.
func (s *Service) RenewAccount(ctx context.Context, cmd RenewAccountCommand) (Status, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return Status{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	account, err := s.accounts.GetByID(ctx, domain.AccountID(cmd.ID))
	if err != nil {
		return Status{}, fmt.Errorf("get account by id: %w", err)
	}

	account.PlanID = ""
	account.PlanName = ""
	if err := s.applyPlan(ctx, &account, cmd.PlanID, ""); err != nil {
		return Status{}, err
	}
	account.CreatedAt = s.clock.Now()
	account.Status = "ativo"

	if err := s.accounts.Save(ctx, account); err != nil {
		return Status{}, fmt.Errorf("save renewed account: %w", err)
	}

	s.settings.Logger.Info("account renewed", "account_id", account.ID, "plan_id", account.PlanID)

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return Status{}, err
	}

	return statusFromAccount(account, catalog, s.evaluateOptions()), nil
}

func (s *Service) RemoveAccount(ctx context.Context, id domain.AccountID) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	return nil
}

func (s *Service) SavePlan(ctx context.Context, cmd SavePlanCommand) (domain.PlanDefinition, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return domain.PlanDefinition{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	plan := domain.PlanDefinition{
		ID:             domain.PlanID(strings.TrimSpace(cmd.ID)),
		Name:           strings.TrimSpace(cmd.Name),
		ValidityDays:   cmd.ValidityDays,
		ExtensionLimit: cmd.ExtensionLimit,
		PriceCents:     cmd.PriceCents,
		Description:    cmd.Description,
	}
	if err := plan.Validate(); err != nil {
		return domain.PlanDefinition{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	if err := s.plans.Save(ctx, plan); err != nil {
		return domain.PlanDefinition{}, fmt.Errorf("save plan: %w", err)
	}

	return plan, nil
}

func (s *Service) ListPlans(ctx context.Context) (domain.PlanCatalog, error) {
	return s.Catalog(ctx)
}

func (s *Service) RemovePlan(ctx context.Context, id domain.PlanID) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	return nil
}

func (s *Service) ListNotifications(ctx context.Context, accountID domain.AccountID, unreadOnly bool) ([]domain.Notification, error) {
	var (
		notifications []domain.Notification
		err           error
	)
	if accountID == "" {
		notifications, err = s.notifications.List(ctx)
	} else {
		notifications, err = s.notifications.ListByAccount(ctx, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	if !unreadOnly {
		return notifications, nil
	}

	unread := make([]domain.Notification, 0, len(notifications))
	for _, notification := range notifications {
		if !notification.Read {
			unread = append(unread, notification)
		}
	}

	return unread, nil
}

func (s *Service) MarkNotificationRead(ctx context.Context, id domain.NotificationID) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	return nil
}

// applyPlan sets the plan reference on account. A plan ID must exist in the catalog; a bare
// name is stored as given and resolved by name at evaluation time.
func (s *Service) applyPlan(ctx context.Context, account *domain.Account, planID, planName string) error {
	planID = strings.TrimSpace(planID)
	planName = strings.TrimSpace(planName)

	if planID == "" {
		if planName != "" {
			account.PlanID = ""
			account.PlanName = planName
		}
		return nil
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return err
	}

	plan, ok := catalog.Resolve(domain.PlanID(planID), "")
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrPlanNotFound, planID)
	}

	account.PlanID = plan.ID
	account.PlanName = plan.Name
	return nil
}

func statusFromAccount(account domain.Account, catalog domain.PlanCatalog, opts domain.EvaluateOptions) Status {
	status := Status{
		Account:    account,
		Expiration: domain.EvaluateAccount(account, catalog, opts),
	}

	if plan, ok := catalog.Resolve(account.PlanID, account.PlanName); ok {
		status.Plan = &plan
	}

	return status
}

func planLabel(account domain.Account, catalog domain.PlanCatalog) string {
	if plan, ok := catalog.Resolve(account.PlanID, account.PlanName); ok {
		return plan.Name
	}
	if name := strings.TrimSpace(account.PlanName); name != "" {
		return name
	}

	return "none"
}
