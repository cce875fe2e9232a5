package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "installbay/internal/log"
	"installbay/internal/metrics"
)

const csrfCookie = "csrf_"

type Options struct {
	Views     fiber.Views
	StaticDir string
	// Storage backs the rate limiters; nil keeps counters in memory.
	Storage fiber.Storage
	// GlobalMax is requests per minute per client; 0 means 60.
	GlobalMax int
	// AccessLog turns on the Fiber access log line per request.
	AccessLog bool
}

// NewApp builds the site: middleware stack, routes and error pages.
func NewApp(d *Deps, o Options) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:         o.Views,
		ViewsLayout:   "layouts/main",
		ErrorHandler:  errorHandler,
		CaseSensitive: true, // /ADMIN must not reach the admin routes
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	if o.AccessLog {
		app.Use(logger.New())
	}
	// product images come from the commerce CDN
	app.Use(helmet.New(helmet.Config{CrossOriginEmbedderPolicy: "unsafe-none"}))
	app.Use(metrics.Middleware())

	globalMax := o.GlobalMax
	if globalMax <= 0 {
		globalMax = 60
	}
	app.Use(limiter.New(limiter.Config{
		Max:          globalMax,
		Expiration:   time.Minute,
		Storage:      o.Storage,
		KeyGenerator: limiterKey("global"),
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/static/") || p == "/healthz" || p == "/metrics"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
			}
			return renderStatus(c, fiber.StatusTooManyRequests, "notfound", fiber.Map{"Message": "Too many requests. Please slow down."})
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     csrfCookie,
		CookieSameSite: "Lax",
		CookieSecure:   d.CookieSecure,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return renderStatus(c, fiber.StatusForbidden, "notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static, health, metrics ----------
	if o.StaticDir != "" {
		app.Static("/static", o.StaticDir)
	}
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ---------- JSON API ----------
	api := app.Group("/api")
	api.Get("/clover/categories", d.POSHandler.Categories)
	api.Get("/clover/customers", d.POSHandler.Customers)
	api.Get("/clover/items", d.POSHandler.Items)
	api.Get("/products", d.ProductHandler.API)

	// ---------- Public pages ----------
	formLimiter := limiter.New(limiter.Config{
		Max:          5,
		Expiration:   10 * time.Minute,
		Storage:      o.Storage,
		KeyGenerator: limiterKey("form"),
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.form.hit", nil)
			return renderStatus(c, fiber.StatusTooManyRequests, "notfound", fiber.Map{"Message": "Too many requests. Please call the shop instead."})
		},
	})
	app.Get("/", d.ProductHandler.Home)
	app.Get("/products", d.ProductHandler.List)
	app.Get("/products/:id", d.ProductHandler.Detail)
	app.Get("/search", d.SearchHandler.Search)
	app.Get("/book", d.BookingHandler.Form)
	app.Post("/book", formLimiter, d.BookingHandler.Create)
	app.Get("/inquire", d.InquiryHandler.Form)
	app.Post("/inquire", formLimiter, d.InquiryHandler.Create)

	// ---------- Admin ----------
	// mounted on every path: the gate matches admin paths itself, whatever
	// their case or escaping
	app.Use(AdminGate(d.AuthSvc, d.CookieSecure))
	app.Get(AdminLogin, d.AuthHandler.LoginForm)
	app.Post(AdminLogin, limiter.New(limiter.Config{
		Max:          5,
		Expiration:   10 * time.Minute,
		Storage:      o.Storage,
		KeyGenerator: limiterKey("login"),
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return renderStatus(c, fiber.StatusTooManyRequests, "admin_login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/admin/logout", d.AuthHandler.Logout)

	admin := app.Group(AdminHome)
	admin.Get("/", d.AdminHandler.Dashboard)
	admin.Get("/bookings", d.AdminHandler.BookingsPage)
	admin.Get("/bookings/:id", d.AdminHandler.BookingPage)
	admin.Post("/bookings/:id/status", d.AdminHandler.UpdateBookingStatus)
	admin.Get("/inquiries", d.AdminHandler.InquiriesPage)
	admin.Post("/inquiries/:id", d.AdminHandler.UpdateInquiry)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, "Page not found")
	})
	return app
}

func limiterKey(scope string) func(*fiber.Ctx) string {
	return func(c *fiber.Ctx) string { return scope + "|" + c.IP() }
}

// errorHandler logs and shows a friendly message without internals.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})

	msg := "Something went wrong. Please try again."
	if code == fiber.StatusNotFound {
		msg = "Page not found"
	}
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	if rerr := renderStatus(c, code, "notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
