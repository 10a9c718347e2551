package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter metrics
var (
	// Merchant registration counter
	MerchantRegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "billsplit_merchant_registrations_total",
			Help: "Total number of merchant registrations",
		},
	)

	// Session lifecycle counters
	SessionCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "billsplit_sessions_created_total",
			Help: "Total number of bill sessions created",
		},
	)

	SessionJoinCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "billsplit_session_joins_total",
			Help: "Total number of participant joins",
		},
	)

	SessionDisputeCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "billsplit_session_disputes_total",
			Help: "Total number of disputes raised",
		},
	)

	SessionExpiredCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "billsplit_sessions_expired_total",
			Help: "Total number of sessions expired and refunded",
		},
	)

	SessionCompletedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "billsplit_sessions_completed_total",
			Help: "Total number of sessions settled",
		},
	)

	// Settled amount counters, in the smallest currency unit
	SettledAmountCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "billsplit_settled_amount_total",
			Help: "Total amount paid out to merchants",
		},
	)

	PlatformFeeCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "billsplit_platform_fee_total",
			Help: "Total platform fees collected",
		},
	)

	// Protocol error counter
	ProtocolErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billsplit_protocol_errors_total",
			Help: "Total number of rejected protocol operations",
		},
		[]string{"operation", "kind"}, // kind is the error name, e.g. "session_not_open"
	)

	// Admin operation counter
	AdminOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billsplit_admin_operations_total",
			Help: "Total number of owner administrative operations",
		},
		[]string{"operation"}, // operation can be "blacklist", "shutdown", "fee_rate"
	)
)

// Histogram metrics
var (
	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billsplit_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)

	// Contribution size
	ContributionHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "billsplit_contribution_amount",
			Help:    "Distribution of participant contribution amounts",
			Buckets: prometheus.ExponentialBuckets(1000, 10, 8),
		},
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "billsplit_info",
			Help: "Information about the billsplit service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(MerchantRegisterCounter)
	prometheus.MustRegister(SessionCreatedCounter)
	prometheus.MustRegister(SessionJoinCounter)
	prometheus.MustRegister(SessionDisputeCounter)
	prometheus.MustRegister(SessionExpiredCounter)
	prometheus.MustRegister(SessionCompletedCounter)
	prometheus.MustRegister(SettledAmountCounter)
	prometheus.MustRegister(PlatformFeeCounter)
	prometheus.MustRegister(ProtocolErrorCounter)
	prometheus.MustRegister(AdminOperationCounter)

	// Register histograms
	prometheus.MustRegister(DBOperationDuration)
	prometheus.MustRegister(ContributionHistogram)

	// Register gauges
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// RecordProtocolError increments the rejection counter for an operation
func RecordProtocolError(operation, kind string) {
	ProtocolErrorCounter.With(prometheus.Labels{
		"operation": operation,
		"kind":      kind,
	}).Inc()
}

// RecordAdminOperation increments the owner administrative operation counter
func RecordAdminOperation(operation string) {
	AdminOperationCounter.With(prometheus.Labels{
		"operation": operation,
	}).Inc()
}

// RecordSettlement records a completed settlement split
func RecordSettlement(payout, fee uint64) {
	SessionCompletedCounter.Inc()
	SettledAmountCounter.Add(float64(payout))
	PlatformFeeCounter.Add(float64(fee))
}

// RecordJoin records a participant contribution
func RecordJoin(amount uint64) {
	SessionJoinCounter.Inc()
	ContributionHistogram.Observe(float64(amount))
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}
