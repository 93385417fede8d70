package metrics

import (
	"fmt"
	"time"

	"github.com/bnema/pabx-entitlements/internal/application"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultNamespace = "pbx"

// CheckObserver exports the outcome of an expiration check in the Prometheus text format, for a
// node_exporter textfile collector to pick up after each cron run.
type CheckObserver struct {
	registry  *prometheus.Registry
	accounts  *prometheus.GaugeVec
	duration  prometheus.Gauge
	lastRunAt prometheus.Gauge
}

func NewCheckObserver(namespace string) (*CheckObserver, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}

	observer := &CheckObserver{
		registry: prometheus.NewRegistry(),
		accounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "accounts",
			Help:      "Accounts per outcome of the last expiration check.",
		}, []string{"result"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "duration_seconds",
			Help:      "Wall time of the last expiration check.",
		}),
		lastRunAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last expiration check finished.",
		}),
	}

	collectors := []prometheus.Collector{observer.accounts, observer.duration, observer.lastRunAt}
	for _, collector := range collectors {
		if err := observer.registry.Register(collector); err != nil {
			return nil, fmt.Errorf("register notify metric: %w", err)
		}
	}

	return observer, nil
}

func (o *CheckObserver) RecordCheck(report application.NotifyReport, duration time.Duration, finishedAt time.Time) {
	if o == nil {
		return
	}

	o.accounts.WithLabelValues("evaluated").Set(float64(report.Evaluated))
	o.accounts.WithLabelValues("skipped").Set(float64(report.Skipped))
	o.accounts.WithLabelValues("created").Set(float64(report.Created))
	o.accounts.WithLabelValues("duplicate").Set(float64(report.Duplicates))
	o.accounts.WithLabelValues("failed").Set(float64(report.Failed))
	o.duration.Set(duration.Seconds())
	o.lastRunAt.Set(float64(finishedAt.Unix()))
}

// WriteTextfile atomically replaces path with the current metric values.
func (o *CheckObserver) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, o.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
