package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, accountsPath string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set("accounts.path", accountsPath)

	repo, err := NewRepository(config, time.UTC)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))

	first := domain.Account{
		ID:        "acc-1",
		Name:      "Recepção",
		Email:     "recepcao@example.com",
		PlanID:    "sip-basico",
		PlanName:  "SIP Básico",
		CreatedAt: time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
		Status:    "ativo",
	}
	second := domain.Account{
		ID:        "acc-2",
		Name:      "Suporte",
		PlanName:  "SIP Premium",
		CreatedAt: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		Status:    "inativo",
	}

	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	got, err := repo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{first, second}, accounts)
}

func TestRepositorySaveReplacesExistingAccount(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))

	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Name: "Old"}))
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Name: "New", PlanID: "sip-trial"}))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "New", accounts[0].Name)
	assert.Equal(t, domain.PlanID("sip-trial"), accounts[0].PlanID)
}

func TestRepositoryReadsDashboardCreatedAtFormats(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(accountsPath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[accounts]]",
		"id = \"date-only\"",
		"name = \"A\"",
		"created_at = \"2024-01-01\"",
		"",
		"[[accounts]]",
		"id = \"timestamptz\"",
		"name = \"B\"",
		"created_at = \"2024-01-01 10:30:00.5+00\"",
		"",
		"[[accounts]]",
		"id = \"garbage\"",
		"name = \"C\"",
		"created_at = \"last tuesday\"",
		"",
	}, "\n")), 0o600))

	config := viper.New()
	config.Set("accounts.path", accountsPath)
	repo, err := NewRepository(config, time.UTC)
	require.NoError(t, err)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(accounts[0].CreatedAt))
	assert.True(t, time.Date(2024, 1, 1, 10, 30, 0, 500_000_000, time.UTC).Equal(accounts[1].CreatedAt))
	assert.True(t, accounts[2].CreatedAt.IsZero())
}

func TestRepositoryReadsDateOnlyValuesInGivenLocation(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(accountsPath, []byte("version = 1\n\n[[accounts]]\nid = \"a\"\nname = \"A\"\ncreated_at = \"2024-01-01\"\n"), 0o600))

	saoPaulo := time.FixedZone("BRT", -3*60*60)
	config := viper.New()
	config.Set("accounts.path", accountsPath)
	repo, err := NewRepository(config, saoPaulo)
	require.NoError(t, err)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.True(t, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC).Equal(accounts[0].CreatedAt))
}

func TestRepositoryDelete(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))

	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Name: "A"}))
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-2", Name: "B"}))

	require.NoError(t, repo.Delete(context.Background(), "acc-1"))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, domain.AccountID("acc-2"), accounts[0].ID)

	err = repo.Delete(context.Background(), "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New(), nil)
	require.NoError(t, err)

	err = repo.Save(context.Background(), domain.Account{ID: "acc-1", Name: "Primary"})
	require.NoError(t, err)

	accountsPath := filepath.Join(homeDir, ".pbx", "accounts.toml")
	info, err := os.Stat(accountsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(accountsPath))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "accounts.toml"))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)

	_, err = repo.GetByID(context.Background(), "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRepositoryListMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(accountsPath, []byte("accounts = ["), 0o600))

	repo := newTestRepository(t, accountsPath)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode accounts file")
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.Account{ID: "acc-1", Name: "Primary"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesPreserveBothAccounts(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")

	repoA := newTestRepository(t, accountsPath)
	repoB := newTestRepository(t, accountsPath)

	const perRepoWrites = 100
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repoA.Save(context.Background(), domain.Account{ID: domain.AccountID("acc-a-" + strconv.Itoa(i)), Name: "A"})
		}
	}()

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repoB.Save(context.Background(), domain.Account{ID: domain.AccountID("acc-b-" + strconv.Itoa(i)), Name: "B"})
		}
	}()

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	accounts, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, perRepoWrites*2)
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	repo := newTestRepository(t, accountsPath)

	require.NoError(t, repo.Save(context.Background(), domain.Account{
		ID:        "acc-1",
		Name:      "Primary",
		PlanID:    "sip-basico",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	data, err := os.ReadFile(accountsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "sip-basico")
	assert.Contains(t, string(data), "2024-01-01T00:00:00Z")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(accountsPath, []byte(strings.Join([]string{
		"version = 999",
		"",
		"accounts = []",
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, accountsPath)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported accounts schema version")
}
