package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, brt)
}

func evalAt(now time.Time) EvaluateOptions {
	return EvaluateOptions{Now: now, Location: brt}
}

func TestCalculateExpirationStatusScenarios(t *testing.T) {
	t.Parallel()

	createdAt, err := ParseCreatedAt("2024-01-01", brt)
	require.NoError(t, err)

	t.Run("expires today on the last entitled day", func(t *testing.T) {
		t.Parallel()

		info, err := CalculateExpirationStatus(createdAt, 20, evalAt(day(2024, 1, 20)))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 20, 23, 59, 59, 999_000_000, brt), info.ExpirationDate)
		assert.False(t, info.IsExpired)
		assert.Equal(t, 0, info.DaysUntilExpiration)
		assert.Equal(t, StatusWarning, info.Status)
		assert.Equal(t, "Expires today", info.StatusText)
		assert.Equal(t, "20/01/2024", info.FormattedDate)
		assert.Equal(t, "20/01/2024 23:59:59", info.FormattedDateTime)
	})

	t.Run("expired the day after", func(t *testing.T) {
		t.Parallel()

		info, err := CalculateExpirationStatus(createdAt, 20, evalAt(day(2024, 1, 21)))
		require.NoError(t, err)
		assert.True(t, info.IsExpired)
		assert.Equal(t, -1, info.DaysUntilExpiration)
		assert.Equal(t, StatusExpired, info.Status)
		assert.Equal(t, "Expired 1 day ago", info.StatusText)
		assert.Equal(t, float64(100), info.ProgressPercentage)
	})

	t.Run("active mid period", func(t *testing.T) {
		t.Parallel()

		info, err := CalculateExpirationStatus(createdAt, 25, evalAt(day(2024, 1, 10)))
		require.NoError(t, err)
		assert.Equal(t, StatusActive, info.Status)
		assert.Equal(t, 15, info.DaysUntilExpiration)
		assert.Equal(t, "15 days remaining", info.StatusText)
		assert.GreaterOrEqual(t, info.ProgressPercentage, float64(36))
		assert.LessOrEqual(t, info.ProgressPercentage, float64(40))
	})

	t.Run("missing plan falls back to thirty days", func(t *testing.T) {
		t.Parallel()

		validity := ResolveValidityDays("", DefaultPlanCatalog())
		require.Equal(t, 30, validity)

		info, err := CalculateExpirationStatus(createdAt, validity, evalAt(day(2024, 1, 10)))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 30, 23, 59, 59, 999_000_000, brt), info.ExpirationDate)
		assert.Equal(t, StatusActive, info.Status)
	})
}

func TestCalculateExpirationStatusDayOneValidity(t *testing.T) {
	t.Parallel()

	now := day(2024, 3, 5)
	info, err := CalculateExpirationStatus(now, 1, evalAt(now))
	require.NoError(t, err)
	assert.False(t, info.IsExpired)
	assert.Equal(t, 0, info.DaysUntilExpiration)
	assert.Equal(t, "Expires today", info.StatusText)
}

func TestCalculateExpirationStatusExactBoundary(t *testing.T) {
	t.Parallel()

	for _, validity := range []int{1, 2, 7, 20, 25, 30, 365} {
		created := day(2024, 2, 1)
		lastDay := created.AddDate(0, 0, validity-1)

		lateOnLastDay := time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, brt)
		info, err := CalculateExpirationStatus(created, validity, evalAt(lateOnLastDay))
		require.NoError(t, err)
		assert.False(t, info.IsExpired, "validity %d at 23:59:59 on last day", validity)

		info, err = CalculateExpirationStatus(created, validity, evalAt(lastDay.AddDate(0, 0, 1)))
		require.NoError(t, err)
		assert.True(t, info.IsExpired, "validity %d on the following day", validity)
	}
}

func TestCalculateExpirationStatusMonotonicInValidity(t *testing.T) {
	t.Parallel()

	created := day(2024, 1, 15)
	opts := evalAt(day(2024, 2, 1))

	var previous time.Time
	for validity := 1; validity <= 90; validity++ {
		info, err := CalculateExpirationStatus(created, validity, opts)
		require.NoError(t, err)
		assert.False(t, info.ExpirationDate.Before(previous), "validity %d", validity)
		previous = info.ExpirationDate
	}
}

func TestCalculateExpirationStatusWarningWindow(t *testing.T) {
	t.Parallel()

	created := day(2024, 1, 1)

	tests := []struct {
		name       string
		now        time.Time
		wantStatus ExpirationStatus
		wantText   string
	}{
		{name: "eight days left", now: day(2024, 1, 2), wantStatus: StatusActive, wantText: "8 days remaining"},
		{name: "seven days left", now: day(2024, 1, 3), wantStatus: StatusWarning, wantText: "Expires in 7 days"},
		{name: "one day left", now: day(2024, 1, 9), wantStatus: StatusWarning, wantText: "Expires tomorrow"},
		{name: "expired three days ago", now: day(2024, 1, 13), wantStatus: StatusExpired, wantText: "Expired 3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := CalculateExpirationStatus(created, 10, evalAt(tt.now))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, info.Status)
			assert.Equal(t, tt.wantText, info.StatusText)
		})
	}
}

func TestCalculateExpirationStatusNormalizesTimeOfDay(t *testing.T) {
	t.Parallel()

	// 01:00 UTC on the 2nd is still the 1st in BRT.
	created := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	info, err := CalculateExpirationStatus(created, 20, evalAt(time.Date(2024, 1, 20, 18, 30, 0, 0, brt)))
	require.NoError(t, err)
	assert.Equal(t, 20, info.ExpirationDate.Day())
	assert.Equal(t, 0, info.DaysUntilExpiration)
	assert.Equal(t, 19, info.DaysElapsed)
}

func TestCalculateExpirationStatusErrorsReturnUnknown(t *testing.T) {
	t.Parallel()

	now := day(2024, 1, 10)

	tests := []struct {
		name      string
		createdAt time.Time
		validity  int
		wantErr   error
	}{
		{name: "missing created-at", validity: 30, wantErr: ErrMissingCreatedAt},
		{name: "zero validity", createdAt: day(2024, 1, 1), validity: 0, wantErr: ErrInvalidValidity},
		{name: "negative validity", createdAt: day(2024, 1, 1), validity: -5, wantErr: ErrInvalidValidity},
		{name: "created tomorrow", createdAt: day(2024, 1, 11), validity: 30, wantErr: ErrCreatedInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := CalculateExpirationStatus(tt.createdAt, tt.validity, evalAt(now))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, StatusUnknown, info.Status)
			assert.False(t, info.IsExpired)
			assert.Equal(t, "–", info.StatusText)
			assert.False(t, info.Known())
		})
	}
}

func TestCalculateExpirationStatusLaterTodayIsNotFuture(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 10, 8, 0, 0, 0, brt)
	info, err := CalculateExpirationStatus(now.Add(10*time.Hour), 1, evalAt(now))
	require.NoError(t, err)
	assert.Equal(t, StatusWarning, info.Status)
}

func TestCalculateExpirationStatusPortugueseLocale(t *testing.T) {
	t.Parallel()

	opts := EvaluateOptions{Now: day(2024, 1, 20), Location: brt, Locale: LocaleFor("pt-BR")}

	info, err := CalculateExpirationStatus(day(2024, 1, 1), 20, opts)
	require.NoError(t, err)
	assert.Equal(t, "Vence hoje", info.StatusText)

	info, err = CalculateExpirationStatus(day(2024, 1, 1), 18, opts)
	require.NoError(t, err)
	assert.Equal(t, "Vencido há 2 dias", info.StatusText)
}

func TestLocaleForFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LocalePortuguese.Tag, LocaleFor("pt-BR").Tag)
	assert.Equal(t, LocalePortuguese.Tag, LocaleFor("pt").Tag)
	assert.Equal(t, LocaleEnglish.Tag, LocaleFor("en-US").Tag)
	assert.Equal(t, LocaleEnglish.Tag, LocaleFor("ja").Tag)
	assert.Equal(t, LocaleEnglish.Tag, LocaleFor("not a tag").Tag)
}

func TestParseCreatedAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr error
	}{
		{name: "date only", raw: "2024-01-01", want: day(2024, 1, 1)},
		{name: "rfc3339", raw: "2024-01-01T10:30:00Z", want: time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)},
		{name: "rfc3339 with fraction", raw: "2024-01-01T10:30:00.123-03:00", want: time.Date(2024, 1, 1, 10, 30, 0, 123_000_000, brt)},
		{name: "postgres timestamptz", raw: "2024-01-01 10:30:00.5+00", want: time.Date(2024, 1, 1, 10, 30, 0, 500_000_000, time.UTC)},
		{name: "no offset", raw: "2024-01-01 10:30:00", want: time.Date(2024, 1, 1, 10, 30, 0, 0, brt)},
		{name: "blank", raw: "   ", wantErr: ErrMissingCreatedAt},
		{name: "garbage", raw: "yesterday", wantErr: ErrUnparseableDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCreatedAt(tt.raw, brt)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}
