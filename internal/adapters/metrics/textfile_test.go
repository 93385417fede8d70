package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/pabx-entitlements/internal/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckObserverWritesTextfile(t *testing.T) {
	t.Parallel()

	observer, err := NewCheckObserver("")
	require.NoError(t, err)

	observer.RecordCheck(
		application.NotifyReport{Evaluated: 4, Skipped: 2, Created: 2, Duplicates: 1},
		1500*time.Millisecond,
		time.Unix(1_700_000_000, 0),
	)

	path := filepath.Join(t.TempDir(), "pbx.prom")
	require.NoError(t, observer.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `pbx_notify_accounts{result="evaluated"} 4`)
	assert.Contains(t, out, `pbx_notify_accounts{result="created"} 2`)
	assert.Contains(t, out, `pbx_notify_accounts{result="duplicate"} 1`)
	assert.Contains(t, out, `pbx_notify_accounts{result="failed"} 0`)
	assert.Contains(t, out, "pbx_notify_duration_seconds 1.5")
	assert.Contains(t, out, "pbx_notify_last_run_timestamp_seconds 1.7e+09")
}

func TestCheckObserverCustomNamespace(t *testing.T) {
	t.Parallel()

	observer, err := NewCheckObserver("pabx")
	require.NoError(t, err)
	observer.RecordCheck(application.NotifyReport{}, 0, time.Unix(0, 0))

	path := filepath.Join(t.TempDir(), "pabx.prom")
	require.NoError(t, observer.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pabx_notify_accounts")
}

func TestNilCheckObserverIgnoresRecords(t *testing.T) {
	t.Parallel()

	var observer *CheckObserver
	assert.NotPanics(t, func() {
		observer.RecordCheck(application.NotifyReport{Created: 1}, time.Second, time.Now())
	})
}
