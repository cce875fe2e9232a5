package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"installbay/internal/commerce"
	applog "installbay/internal/log"
	"installbay/internal/metrics"
	"installbay/internal/services"
	"installbay/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	POS     *services.POSService
}

// Home shows the featured shelf and the POS departments. Either source may
// be missing; the page renders with what it has.
func (h *ProductHandler) Home(c *fiber.Ctx) error {
	featured, err := h.Catalog.Featured(c.UserContext(), 8)
	if err != nil && !errors.Is(err, services.ErrUnavailable) {
		applog.Error(c, "home.featured.fail", err, nil)
	}
	cats, err := h.POS.Categories(c.UserContext())
	if err != nil && !errors.Is(err, services.ErrUnavailable) {
		applog.Error(c, "home.categories.fail", err, nil)
	}
	return render(c, "home", fiber.Map{"Products": featured, "Categories": cats})
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := validate.Page(c.Query("page"))
	res, err := h.Catalog.Products(c.UserContext(), commerce.ProductQuery{Page: page})
	switch {
	case errors.Is(err, services.ErrUnavailable):
		return renderStatus(c, fiber.StatusServiceUnavailable, "products", fiber.Map{
			"Products": res.Data, "Err": "The online catalog is offline. Call the shop for stock.",
		})
	case err != nil:
		applog.Error(c, "products.list.fail", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	}
	p := res.Meta.Pagination
	return render(c, "products", fiber.Map{
		"Products": res.Data,
		"Page":     page,
		"PrevPage": page - 1,
		"NextPage": nextPage(page, p.TotalPages),
		"Total":    p.Total,
	})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "This item is no longer available")
	}
	p, err := h.Catalog.Product(c.UserContext(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, "This item is no longer available")
	case errors.Is(err, services.ErrUnavailable):
		return renderStatus(c, fiber.StatusServiceUnavailable, "notfound", fiber.Map{"Message": "The online catalog is offline. Call the shop for stock."})
	case err != nil:
		applog.Error(c, "product.detail.fail", err, map[string]any{"product_id": id})
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load this product. Please retry."})
	}
	return render(c, "product", fiber.Map{"P": p, "InStock": p.InStock()})
}

// API is the JSON listing used by the storefront scripts.
func (h *ProductHandler) API(c *fiber.Ctx) error {
	limit, ok := validate.Limit(c.Query("limit"), 24, 250)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be 1-250"})
	}
	q := commerce.ProductQuery{Page: validate.Page(c.Query("page")), Limit: limit}
	if raw := c.Query("q"); raw != "" {
		kw, ok := validate.Q(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid search keyword"})
		}
		q.Keyword = kw
	}
	res, err := h.Catalog.Products(c.UserContext(), q)
	if errors.Is(err, services.ErrUnavailable) {
		metrics.VendorUnavailableTotal.WithLabelValues("commerce").Inc()
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":    "Commerce integration is not configured",
			"products": []any{},
		})
	}
	if err != nil {
		applog.Error(c, "api.products.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to fetch products",
			"details": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"products": res.Data,
		"count":    len(res.Data),
		"total":    res.Meta.Pagination.Total,
	})
}

func nextPage(page, total int) int {
	if page >= total {
		return 0
	}
	return page + 1
}
