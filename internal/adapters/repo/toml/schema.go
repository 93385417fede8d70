package toml

import "fmt"

const currentSchemaVersion = 1

func defaultVersion(version *int) {
	if *version == 0 {
		*version = currentSchemaVersion
	}
}

func validateVersion(kind string, version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported %s schema version %d (current %d)", kind, version, currentSchemaVersion)
	}

	return nil
}

type accountsFileSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

// created_at keeps whatever the dashboard exported: a bare date, RFC3339 or a
// Postgres timestamptz literal.
type accountSchema struct {
	ID        string `toml:"id"`
	Name      string `toml:"name"`
	Email     string `toml:"email,omitempty"`
	PlanID    string `toml:"plan_id,omitempty"`
	PlanName  string `toml:"plan_name,omitempty"`
	CreatedAt string `toml:"created_at,omitempty"`
	Status    string `toml:"status,omitempty"`
}

type plansFileSchema struct {
	Version int          `toml:"version"`
	Plans   []planSchema `toml:"plans"`
}

type planSchema struct {
	ID             string `toml:"id"`
	Name           string `toml:"name"`
	ValidityDays   int    `toml:"validity_days"`
	ExtensionLimit int    `toml:"extension_limit,omitempty"`
	PriceCents     int64  `toml:"price_cents,omitempty"`
	Description    string `toml:"description,omitempty"`
}

type notificationsFileSchema struct {
	Version       int                  `toml:"version"`
	Notifications []notificationSchema `toml:"notifications"`
}

type notificationSchema struct {
	ID        string `toml:"id"`
	AccountID string `toml:"account_id"`
	Title     string `toml:"title"`
	Message   string `toml:"message"`
	Kind      string `toml:"kind"`
	Read      bool   `toml:"read"`
	Timestamp string `toml:"timestamp"`
}
