package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "backoffice_"

	// ResultSuccess and friends label the outcome of a ledger mutation.
	ResultSuccess     = "success"
	ResultNotFound    = "not_found"
	ResultOverpayment = "overpayment"
	ResultConflict    = "conflict"
	ResultError       = "error"
)

var (
	registerOnce sync.Once

	ledgerMutations *prometheus.CounterVec
	ledgerLatency   *prometheus.HistogramVec

	reportExports *prometheus.CounterVec

	loginAttempts *prometheus.CounterVec
)

// Init registers application metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		ledgerMutations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_mutations_total",
				Help: "Total payment ledger mutations by aggregate kind, operation and result",
			},
			[]string{"kind", "op", "result"},
		)
		ledgerLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ledger_mutation_latency_seconds",
				Help:    "Payment ledger mutation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "op"},
		)

		reportExports = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_exports_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)

		loginAttempts = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "login_attempts_total",
				Help: "Total login attempts by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			ledgerMutations,
			ledgerLatency,
			reportExports,
			loginAttempts,
		)
	})
}

// ObserveLedgerMutation records one payment mutation with its outcome.
func ObserveLedgerMutation(kind, op, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if ledgerMutations != nil {
		ledgerMutations.WithLabelValues(kind, op, result).Inc()
	}
	if ledgerLatency != nil {
		ledgerLatency.WithLabelValues(kind, op).Observe(duration.Seconds())
	}
}

// IncReportExport increments the report export counter.
func IncReportExport(format, result string) {
	if result == "" {
		result = ResultSuccess
	}
	if reportExports != nil {
		reportExports.WithLabelValues(format, result).Inc()
	}
}

// IncLoginAttempt increments the login attempt counter.
func IncLoginAttempt(result string) {
	if result == "" {
		result = ResultSuccess
	}
	if loginAttempts != nil {
		loginAttempts.WithLabelValues(result).Inc()
	}
}
