package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	CreditsProcessed  prometheus.Counter
	CreditsReplayed   prometheus.Counter
	ReversalsPosted   prometheus.Counter
	ReversalsReplayed prometheus.Counter
	CreditAmount      prometheus.Histogram
	LedgerErrors      *prometheus.CounterVec

	// Rule engine metrics
	RulesEvaluated prometheus.Counter
	RulesTriggered prometheus.Counter
	FlowsExecuted  prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		CreditsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rewardledger_credits_processed_total",
			Help: "Total number of reward credits posted",
		}),
		CreditsReplayed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rewardledger_credits_replayed_total",
			Help: "Total number of credit requests answered from an existing transaction",
		}),
		ReversalsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rewardledger_reversals_posted_total",
			Help: "Total number of compensating reversals posted",
		}),
		ReversalsReplayed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rewardledger_reversals_replayed_total",
			Help: "Total number of reversal requests answered from an existing transaction",
		}),
		CreditAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rewardledger_credit_amount",
			Help:    "Reward credit amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		LedgerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewardledger_ledger_errors_total",
				Help: "Total number of ledger errors by type",
			},
			[]string{"error_type"},
		),

		RulesEvaluated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rewardledger_rules_evaluated_total",
			Help: "Total number of rules evaluated",
		}),
		RulesTriggered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rewardledger_rules_triggered_total",
			Help: "Total number of rules that triggered actions",
		}),
		FlowsExecuted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rewardledger_flows_executed_total",
			Help: "Total number of flow executions dispatched to the ledger",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewardledger_http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rewardledger_http_request_duration_seconds",
				Help:    "HTTP request duration by method and path",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
