package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"installbay/internal/domain"
)

// IsAdminPath reports whether the admin shell applies: the site overlay,
// header and footer are not rendered on these pages. Case and escaping
// variants of /admin count as admin paths.
func IsAdminPath(path string) bool {
	path = canonicalPath(path)
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}

// canonicalPath unescapes and lowercases path and drops a trailing slash.
func canonicalPath(path string) string {
	if p, err := url.PathUnescape(path); err == nil {
		path = p
	}
	path = strings.ToLower(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

// NewViews loads the page templates with the helpers they use.
func NewViews(dir string, reload bool) *html.Engine {
	engine := html.New(dir, ".html")
	engine.Reload(reload)
	engine.AddFunc("cents", domain.FormatCents)
	engine.AddFunc("price", domain.FormatPrice)
	return engine
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	admin := IsAdminPath(c.Path())
	data["IsAdmin"] = admin
	data["ShowChrome"] = !admin
	data["Path"] = c.Path()
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies(csrfCookie)
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	return renderStatus(c, fiber.StatusNotFound, "notfound", fiber.Map{"Message": msg})
}

func renderStatus(c *fiber.Ctx, status int, tmpl string, data fiber.Map) error {
	c.Status(status)
	return render(c, tmpl, data)
}
