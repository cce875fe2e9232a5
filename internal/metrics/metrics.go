package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	VendorRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vendor_request_duration_seconds",
		Help:    "Latency of outbound vendor API calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"vendor", "method"})

	VendorRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendor_requests_total",
		Help: "Outbound vendor API calls by result status (0 = transport error)",
	}, []string{"vendor", "method", "status"})

	VendorUnavailableTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendor_unavailable_total",
		Help: "Requests short-circuited because an integration is not configured",
	}, []string{"vendor"})

	GateDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_gate_decisions_total",
		Help: "Access-control gate outcomes",
	}, []string{"decision"})

	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Bookings created through the public form",
	})

	InquiriesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inquiries_created_total",
		Help: "Inquiries created through the public form",
	}, []string{"request_type"})
)

// Middleware records per-route request counts and latency. The route
// pattern is used as the path label to keep cardinality bounded.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := strconv.Itoa(statusOf(c, err))
		HTTPRequestDuration.WithLabelValues(c.Method(), path, status).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(c.Method(), path, status).Inc()
		return err
	}
}

// statusOf is the status the error handler will write for err. The
// response still holds the pre-error status at this point.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
