package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

var (
	once          sync.Once
	metricsRouter *chi.Mux

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	transferClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transfer_client_latency_seconds",
			Help:    "Histogram of transfer gateway client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	claimsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claims_total",
			Help: "Number of claim attempts split by result code",
		},
		[]string{"result"},
	)

	claimedAmountCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimed_amount_total",
			Help: "Base units transferred to beneficiaries per asset",
		},
		[]string{"asset"},
	)

	poolGrantedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pool_granted_amount",
			Help: "Sum of total amounts of all grants in the pool",
		},
		[]string{"pool"},
	)

	poolWithdrawnGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pool_withdrawn_amount",
			Help: "Sum of withdrawn amounts of all grants in the pool",
		},
		[]string{"pool"},
	)

	poolClaimableGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pool_claimable_amount",
			Help: "Sum of amounts currently claimable in the pool",
		},
		[]string{"pool"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)
)

// Init registers the collectors and serves them on metricsPort.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

func registerMetrics() {
	prometheus.MustRegister(
		clientRequestDurationHistogram,
		transferClientLatency,
		queueSendErrorCounter,
		pollerDurationHistogram,
		claimsCounter,
		claimedAmountCounter,
		poolGrantedGauge,
		poolWithdrawnGauge,
		poolClaimableGauge,
		dbLatency,
	)
}

func RecordTransferClientLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	transferClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

// RecordClaim counts a claim attempt, result is "success" or an error code
func RecordClaim(result string) {
	claimsCounter.WithLabelValues(result).Inc()
}

func RecordClaimedAmount(asset string, amount uint64) {
	claimedAmountCounter.WithLabelValues(asset).Add(float64(amount))
}

func RecordPoolAmounts(poolID string, granted, withdrawn, claimable uint64) {
	poolGrantedGauge.WithLabelValues(poolID).Set(float64(granted))
	poolWithdrawnGauge.WithLabelValues(poolID).Set(float64(withdrawn))
	poolClaimableGauge.WithLabelValues(poolID).Set(float64(claimable))
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}
