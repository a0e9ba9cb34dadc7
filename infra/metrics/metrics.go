package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafeteria_http_requests_total",
			Help: "Total number of HTTP requests served by the ops server",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cafeteria_http_request_duration_seconds",
			Help:    "Ops server request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	UnitsReserved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cafeteria_units_reserved_total",
		Help: "Units moved from the catalog into customer orders",
	})
	UnitsReleased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cafeteria_units_released_total",
		Help: "Units given back to the catalog from customer orders",
	})
	ItemsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafeteria_items_skipped_total",
			Help: "Selected items that could not be reserved",
		},
		[]string{"reason"},
	)
	CheckoutAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafeteria_checkout_attempts_total",
			Help: "Payment entries by result",
		},
		[]string{"result"},
	)
	AdminAuthentications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafeteria_admin_authentications_total",
			Help: "Admin gate outcomes",
		},
		[]string{"outcome"},
	)
	ReceiptsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafeteria_receipts_published_total",
			Help: "Receipt deliveries by outcome",
		},
		[]string{"outcome"},
	)
)

// Recorder feeds use case events into the package counters.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (Recorder) UnitsReserved(quantity int32) {
	UnitsReserved.Add(float64(quantity))
}

func (Recorder) UnitsReleased(quantity int32) {
	UnitsReleased.Add(float64(quantity))
}

func (Recorder) ItemSkipped(reason string) {
	ItemsSkipped.WithLabelValues(reason).Inc()
}

func (Recorder) CheckoutAttempt(accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	CheckoutAttempts.WithLabelValues(result).Inc()
}

func (Recorder) AdminAuthentication(outcome string) {
	AdminAuthentications.WithLabelValues(outcome).Inc()
}

func (Recorder) ReceiptPublished(outcome string) {
	ReceiptsPublished.WithLabelValues(outcome).Inc()
}

func NormalizePath(p string) string {
	p = strings.TrimPrefix(p, "/")
	if idx := strings.Index(p, "/"); idx >= 0 {
		p = p[:idx]
	}
	if p == "" {
		return "root"
	}
	return p
}

func Middleware(c *gin.Context) {
	if c.Request.URL.Path == "/metrics" {
		c.Next()
		return
	}
	start := time.Now()
	c.Next()
	path := NormalizePath(c.Request.URL.Path)
	RequestTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
}
