package application

type SaveAccountCommand struct {
	// ID blank or "0" assigns the next numeric account ID.
	ID       string
	Name     string `validate:"required"`
	Email    string `validate:"omitempty,email"`
	PlanID   string
	PlanName string
	// CreatedAt is parsed with domain.ParseCreatedAt; blank keeps the stored value, or uses now
	// for new accounts.
	CreatedAt string
	Status    string `validate:"omitempty,oneof=ativo inativo active inactive"`
}

type SavePlanCommand struct {
	ID             string `validate:"required"`
	Name           string `validate:"required"`
	ValidityDays   int    `validate:"gt=0"`
	ExtensionLimit int    `validate:"gte=0"`
	PriceCents     int64  `validate:"gte=0"`
	Description    string
}

type RenewAccountCommand struct {
	ID     string `validate:"required"`
	PlanID string `validate:"required"`
}
