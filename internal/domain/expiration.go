package domain

import (
	"math"
	"time"
)

type ExpirationStatus string

const (
	StatusActive  ExpirationStatus = "active"
	StatusWarning ExpirationStatus = "warning"
	StatusExpired ExpirationStatus = "expired"
	StatusUnknown ExpirationStatus = "unknown"
)

// WarningWindowDays is the number of remaining days at or below which an entitlement is flagged.
const WarningWindowDays = 7

// ExpirationInfo describes an account's entitlement at one evaluation instant. It is derived on
// demand and never persisted.
type ExpirationInfo struct {
	// ExpirationDate is the last instant of the last entitled day.
	ExpirationDate      time.Time
	IsExpired           bool
	DaysUntilExpiration int
	DaysElapsed         int
	ValidityDays        int
	Status              ExpirationStatus
	StatusText          string
	ProgressPercentage  float64
	FormattedDate       string
	FormattedDateTime   string
}

func (i ExpirationInfo) Known() bool {
	return i.Status != StatusUnknown && i.Status != ""
}

type EvaluateOptions struct {
	Now      time.Time
	Location *time.Location
	Locale   Locale
}

func (o EvaluateOptions) resolve() EvaluateOptions {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	o.Locale = o.Locale.orDefault()

	return o
}

// CalculateExpirationStatus classifies an entitlement that started on createdAt and lasts
// validityDays calendar days, the creation day being day one. Day boundaries are taken in
// opts.Location.
//
// On error the returned info is the unknown sentinel, so callers rendering lists can use it
// directly and ignore the error.
func CalculateExpirationStatus(createdAt time.Time, validityDays int, opts EvaluateOptions) (ExpirationInfo, error) {
	opts = opts.resolve()

	if createdAt.IsZero() {
		return unknownInfo(opts.Locale, validityDays), ErrMissingCreatedAt
	}
	if validityDays <= 0 {
		return unknownInfo(opts.Locale, validityDays), ErrInvalidValidity
	}

	today := startOfDay(opts.Now, opts.Location)
	created := startOfDay(createdAt, opts.Location)
	if created.After(today) {
		return unknownInfo(opts.Locale, validityDays), ErrCreatedInFuture
	}

	lastDay := created.AddDate(0, 0, validityDays-1)
	expiration := endOfDay(lastDay)

	daysUntil := calendarDaysBetween(today, lastDay)
	daysElapsed := calendarDaysBetween(created, today)
	isExpired := today.After(expiration)

	status := StatusActive
	switch {
	case isExpired:
		status = StatusExpired
	case daysUntil <= WarningWindowDays:
		status = StatusWarning
	}

	return ExpirationInfo{
		ExpirationDate:      expiration,
		IsExpired:           isExpired,
		DaysUntilExpiration: daysUntil,
		DaysElapsed:         daysElapsed,
		ValidityDays:        validityDays,
		Status:              status,
		StatusText:          opts.Locale.statusText(status, daysUntil),
		ProgressPercentage:  clampPercent(float64(daysElapsed) / float64(validityDays) * 100),
		FormattedDate:       expiration.Format(opts.Locale.DateLayout),
		FormattedDateTime:   expiration.Format(opts.Locale.DateTimeLayout),
	}, nil
}

// EvaluateAccount never fails: accounts without a creation date or plan reference, or whose
// dates cannot be evaluated, come back with StatusUnknown.
func EvaluateAccount(account Account, catalog PlanCatalog, opts EvaluateOptions) ExpirationInfo {
	opts = opts.resolve()

	if account.CreatedAt.IsZero() || !account.HasPlan() {
		return unknownInfo(opts.Locale, 0)
	}

	info, _ := CalculateExpirationStatus(account.CreatedAt, catalog.ValidityDays(account.PlanID, account.PlanName), opts)
	return info
}

func unknownInfo(locale Locale, validityDays int) ExpirationInfo {
	return ExpirationInfo{
		ValidityDays:      validityDays,
		Status:            StatusUnknown,
		StatusText:        locale.Placeholder,
		FormattedDate:     locale.Placeholder,
		FormattedDateTime: locale.Placeholder,
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// calendarDaysBetween counts whole calendar days from a to b, ignoring DST shifts in between.
func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(math.Round(to.Sub(from).Hours() / 24))
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
