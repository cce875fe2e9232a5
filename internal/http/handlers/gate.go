package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "installbay/internal/log"
	"installbay/internal/metrics"
	"installbay/internal/services"
	"installbay/internal/supabase"
)

const (
	AdminHome  = "/admin"
	AdminLogin = "/admin/login"

	accessCookie  = "sb-access-token"
	refreshCookie = "sb-refresh-token"
)

type Decision int

const (
	Allowed Decision = iota
	RedirectToLogin
	RedirectToHome
)

func (d Decision) String() string {
	switch d {
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToHome:
		return "redirect_home"
	default:
		return "allowed"
	}
}

// Decide is the whole access policy for the admin area.
func Decide(path string, session bool) Decision {
	path = canonicalPath(path)
	if !IsAdminPath(path) {
		return Allowed
	}
	if path == AdminLogin {
		if session {
			return RedirectToHome
		}
		return Allowed
	}
	if !session {
		return RedirectToLogin
	}
	return Allowed
}

// AdminGate resolves the session cookies and applies Decide. Refreshed
// tokens are written to the response whether or not the request is
// redirected. An auth service failure counts as no session.
func AdminGate(auth *services.AuthService, cookieSecure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdminPath(c.Path()) {
			return c.Next()
		}
		var sess *services.Session
		access, refresh := c.Cookies(accessCookie), c.Cookies(refreshCookie)
		if access != "" || refresh != "" {
			var err error
			sess, err = auth.Resolve(c.UserContext(), access, refresh)
			switch {
			case err != nil:
				applog.Security(c, "auth.resolve.fail", map[string]any{"error": err.Error()})
				sess = nil
			case sess == nil:
				clearSessionCookies(c, cookieSecure)
			case sess.Refreshed != nil:
				setSessionCookies(c, *sess.Refreshed, cookieSecure)
				applog.Audit(c, "auth.session.refreshed", map[string]any{"user": sess.User.ID})
			}
		}

		d := Decide(c.Path(), sess != nil)
		metrics.GateDecisionsTotal.WithLabelValues(d.String()).Inc()
		switch d {
		case RedirectToLogin:
			applog.Security(c, "access.denied.admin", nil)
			return c.Redirect(AdminLogin, fiber.StatusFound)
		case RedirectToHome:
			return c.Redirect(AdminHome, fiber.StatusFound)
		}
		if sess != nil {
			c.Locals("user", sess.User)
			c.Locals("user_id", sess.User.ID)
		}
		return c.Next()
	}
}

func setSessionCookies(c *fiber.Ctx, s supabase.Session, secure bool) {
	ttl := s.ExpiresIn
	if ttl <= 0 {
		ttl = int(time.Hour / time.Second)
	}
	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    s.AccessToken,
		Path:     "/",
		MaxAge:   ttl,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    s.RefreshToken,
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour) / time.Second),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
	})
}

func clearSessionCookies(c *fiber.Ctx, secure bool) {
	for _, name := range []string{accessCookie, refreshCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   secure,
			Expires:  time.Now().Add(-1 * time.Hour),
		})
	}
}
