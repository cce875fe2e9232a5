package metrics_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"installbay/internal/metrics"
)

func TestMiddlewareCountsErrorStatus(t *testing.T) {
	app := fiber.New()
	app.Use(metrics.Middleware())
	app.Get("/metrics-test/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics-test/bad", func(c *fiber.Ctx) error { return fiber.ErrBadRequest })
	app.Get("/metrics-test/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	for _, p := range []string{"/metrics-test/ok", "/metrics-test/bad", "/metrics-test/boom"} {
		_, err := app.Test(httptest.NewRequest("GET", p, nil))
		require.NoError(t, err)
	}

	count := func(path, status string) float64 {
		return testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", path, status))
	}
	assert.Equal(t, 1.0, count("/metrics-test/ok", "200"))
	assert.Equal(t, 1.0, count("/metrics-test/bad", "400"))
	assert.Equal(t, 0.0, count("/metrics-test/bad", "200"))
	assert.Equal(t, 1.0, count("/metrics-test/boom", "500"))
}
