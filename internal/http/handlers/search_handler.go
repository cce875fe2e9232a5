package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"installbay/internal/log"
	"installbay/internal/services"
	"installbay/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return render(c, "search", fiber.Map{"Q": "", "Products": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return renderStatus(c, fiber.StatusBadRequest, "search", fiber.Map{
			"Q": "", "Products": []any{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
		})
	}

	res, err := h.Catalog.Search(c.UserContext(), q, validate.Page(c.Query("page")))
	switch {
	case errors.Is(err, services.ErrUnavailable):
		return renderStatus(c, fiber.StatusServiceUnavailable, "search", fiber.Map{
			"Q": q, "Products": []any{}, "Count": 0, "Err": "Search is offline. Call the shop for stock.",
		})
	case err != nil:
		log.Error(c, "search.error", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}

	return render(c, "search", fiber.Map{
		"Q": q, "Products": res.Data, "Count": len(res.Data),
	})
}
