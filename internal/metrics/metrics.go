// Package metrics exports run metrics for Prometheus.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "phone_agent"

// Recorder holds the metrics of one process on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	handoffs      prometheus.Counter
	calls         *prometheus.CounterVec
	fetchFailures prometheus.Counter
	lastRun       prometheus.Gauge
	now           func() time.Time
}

var _ contract.Recorder = (*Recorder)(nil)

func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Runs by outcome",
		}, []string{"outcome"}),
		handoffs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handoffs_total",
			Help:      "Runs where the on-call person changed",
		}),
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Outbound calls by purpose and whether they succeeded or were skipped",
		}, []string{"purpose", "success", "skipped"}),
		fetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_fetch_failures_total",
			Help:      "Failed attempts to read the on-call schedule",
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
		now: time.Now,
	}
}

func (r *Recorder) RunFinished(outcome entity.RunOutcome) {
	r.runs.WithLabelValues(string(outcome)).Inc()
	r.lastRun.Set(float64(r.now().Unix()))
}

func (r *Recorder) Handoff() {
	r.handoffs.Inc()
}

func (r *Recorder) CallPlaced(purpose entity.CallPurpose, result entity.PhoneActionResult) {
	r.calls.WithLabelValues(string(purpose), strconv.FormatBool(result.Success), strconv.FormatBool(result.Skipped)).Inc()
}

func (r *Recorder) FetchFailed() {
	r.fetchFailures.Inc()
}

// Handler serves the registry for scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the registry for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
