package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "installbay/internal/log"
	"installbay/internal/metrics"
	"installbay/internal/services"
	"installbay/internal/validate"
)

// POSHandler proxies point-of-sale lookups as JSON.
type POSHandler struct {
	POS *services.POSService
}

func (h *POSHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.POS.Categories(c.UserContext())
	if err != nil {
		return posFailure(c, err, "categories", "Failed to fetch categories from Clover")
	}
	return c.JSON(fiber.Map{"categories": cats, "count": len(cats)})
}

func (h *POSHandler) Customers(c *fiber.Ctx) error {
	limit, offset, ok := pageParams(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be 1-1000 and offset must be 0 or more"})
	}
	page, err := h.POS.Customers(c.UserContext(), limit, offset)
	if err != nil {
		return posFailure(c, err, "customers", "Failed to fetch customers from Clover")
	}
	out := fiber.Map{"customers": page.Elements, "count": len(page.Elements)}
	if page.Href != "" {
		out["href"] = page.Href
	}
	return c.JSON(out)
}

func (h *POSHandler) Items(c *fiber.Ctx) error {
	limit, offset, ok := pageParams(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be 1-1000 and offset must be 0 or more"})
	}
	page, err := h.POS.Items(c.UserContext(), limit, offset)
	if err != nil {
		return posFailure(c, err, "items", "Failed to fetch items from Clover")
	}
	out := fiber.Map{"items": page.Elements, "count": len(page.Elements)}
	if page.Href != "" {
		out["href"] = page.Href
	}
	return c.JSON(out)
}

func pageParams(c *fiber.Ctx) (limit, offset int, ok bool) {
	if limit, ok = validate.Limit(c.Query("limit"), 100, 1000); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "limit"})
		return 0, 0, false
	}
	if offset, ok = validate.Offset(c.Query("offset")); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "offset"})
		return 0, 0, false
	}
	return limit, offset, true
}

// posFailure maps an unconfigured POS to 503 with an empty collection and
// any other failure to 500 with the adapter error as details.
func posFailure(c *fiber.Ctx, err error, resource, msg string) error {
	if errors.Is(err, services.ErrUnavailable) {
		metrics.VendorUnavailableTotal.WithLabelValues("clover").Inc()
		applog.Info(c, "api.clover.unavailable", map[string]any{"resource": resource, "reason": err.Error()})
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":  "Clover integration is not configured",
			resource: []any{},
		})
	}
	applog.Error(c, "api.clover."+resource+".fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   msg,
		"details": err.Error(),
	})
}
