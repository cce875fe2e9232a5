package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"installbay/internal/metrics"
)

const maxErrorBody = 2048

var tracer = otel.Tracer("installbay/upstream")

// Client issues single-attempt JSON requests against one vendor base URL.
// There is no retry and no caching; the first failure is returned.
type Client struct {
	Name    string            // vendor label used in errors and metrics
	BaseURL string            // scheme://host/versioned/path/<account>
	Token   string            // bearer credential
	Headers map[string]string // extra static headers
	Timeout time.Duration
}

// Request describes one call. Path is joined to BaseURL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

func (c *Client) URL(path string, q url.Values) string {
	u := strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// GetJSON is Do with GET and no body.
func (c *Client) GetJSON(ctx context.Context, path string, q url.Values, out any) error {
	return c.Do(ctx, Request{Method: fiber.MethodGet, Path: path, Query: q}, out)
}

// Do sends the request and decodes a 2xx body into out (when out is not nil).
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	if r.Method == "" {
		r.Method = fiber.MethodGet
	}
	ctx, span := tracer.Start(ctx, c.Name+" "+r.Method+" "+r.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("vendor", c.Name),
			attribute.String("http.method", r.Method),
		))
	defer span.End()

	start := time.Now()
	status, body, err := c.send(ctx, r)
	metrics.VendorRequestDuration.WithLabelValues(c.Name, r.Method).Observe(time.Since(start).Seconds())
	metrics.VendorRequestsTotal.WithLabelValues(c.Name, r.Method, strconv.Itoa(status)).Inc()
	span.SetAttributes(attribute.Int("http.status_code", status))

	if err == nil && (status < 200 || status > 299) {
		err = &APIError{Vendor: c.Name, Method: r.Method, Path: r.Path, Status: status, Body: truncate(body)}
	}
	if err == nil && out != nil && len(body) > 0 {
		if derr := json.Unmarshal(body, out); derr != nil {
			err = &APIError{Vendor: c.Name, Method: r.Method, Path: r.Path, Status: status, Body: truncate(body), Err: derr}
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) send(ctx context.Context, r Request) (int, []byte, error) {
	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(r.Method)
	req.SetRequestURI(c.URL(r.Path, r.Query))
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.Token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+c.Token)
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			fiber.ReleaseAgent(a)
			return 0, nil, &APIError{Vendor: c.Name, Method: r.Method, Path: r.Path, Err: err}
		}
		a.ContentType(fiber.MIMEApplicationJSON)
		a.Body(b)
	}

	timeout := c.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); timeout <= 0 || left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 && ctx.Err() != nil {
		fiber.ReleaseAgent(a)
		return 0, nil, &APIError{Vendor: c.Name, Method: r.Method, Path: r.Path, Err: ctx.Err()}
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return 0, nil, &APIError{Vendor: c.Name, Method: r.Method, Path: r.Path, Err: err}
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return 0, nil, &APIError{Vendor: c.Name, Method: r.Method, Path: r.Path, Err: errors.Join(errs...)}
	}
	return code, body, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody])
	}
	return string(b)
}
