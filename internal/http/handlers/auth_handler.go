package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"installbay/internal/log"
	"installbay/internal/services"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

// GET /admin/login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "admin_login", fiber.Map{"Err": ""})
}

// POST /admin/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")

	sess, err := h.Auth.SignIn(c.UserContext(), email, pass)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return renderStatus(c, fiber.StatusUnauthorized, "admin_login", fiber.Map{"Err": "Invalid email or password", "Email": email})
	}
	if err != nil {
		log.Error(c, "auth.login.error", err, map[string]any{"email": email})
		return renderStatus(c, fiber.StatusServiceUnavailable, "admin_login", fiber.Map{"Err": "Sign-in is unavailable right now. Please try again.", "Email": email})
	}

	setSessionCookies(c, sess, h.CookieSecure)
	c.Locals("user_id", sess.User.ID)
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect(AdminHome, fiber.StatusFound)
}

// POST /admin/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.Auth.SignOut(c.UserContext(), c.Cookies(accessCookie)); err != nil {
		log.Error(c, "auth.logout.error", err, nil)
	}
	clearSessionCookies(c, h.CookieSecure)
	log.Audit(c, "auth.logout", nil)
	return c.Redirect(AdminLogin, fiber.StatusFound)
}
