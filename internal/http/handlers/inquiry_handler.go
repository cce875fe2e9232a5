package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "installbay/internal/log"
	"installbay/internal/services"
)

type InquiryHandler struct {
	Catalog   *services.CatalogService
	Inquiries *services.InquiryService
}

// GET /inquire?product=<id>
func (h *InquiryHandler) Form(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Query("product"))
	if err != nil || id <= 0 {
		return notFound(c, "Pick a product to ask about")
	}
	p, err := h.Catalog.Product(c.UserContext(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, "This item is no longer available")
	case errors.Is(err, services.ErrUnavailable):
		return renderStatus(c, fiber.StatusServiceUnavailable, "notfound", fiber.Map{"Message": "Product inquiries are unavailable right now. Please call the shop."})
	case err != nil:
		applog.Error(c, "inquiry.form.fail", err, map[string]any{"product_id": id})
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load this product. Please retry."})
	}
	return render(c, "inquire", fiber.Map{"P": p, "Backorder": !p.InStock(), "Form": services.InquiryRequest{}})
}

// POST /inquire
func (h *InquiryHandler) Create(c *fiber.Ctx) error {
	in := services.InquiryRequest{
		ProductID: c.FormValue("product"),
		Name:      c.FormValue("name"),
		Email:     c.FormValue("email"),
		Phone:     c.FormValue("phone"),
		Message:   c.FormValue("message"),
	}

	q, err := h.Inquiries.Create(c.UserContext(), in)
	var (
		fe *services.FieldError
		pe *services.PublishError
	)
	switch {
	case errors.As(err, &fe):
		applog.Security(c, "validation.fail", map[string]any{"form": "inquiry", "field": fe.Field})
		return renderStatus(c, fiber.StatusBadRequest, "inquire", fiber.Map{
			"Form": in, "Err": "Please check the " + fe.Field + " field.",
		})
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, "This item is no longer available")
	case errors.Is(err, services.ErrUnavailable):
		return renderStatus(c, fiber.StatusServiceUnavailable, "notfound", fiber.Map{"Message": "Product inquiries are unavailable right now. Please call the shop."})
	case errors.As(err, &pe):
		applog.Error(c, "inquiry.event.fail", err, map[string]any{"inquiry_id": q.ID})
	case err != nil:
		applog.Error(c, "inquiry.create.fail", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "We could not send your request. Please call the shop."})
	}

	applog.Audit(c, "inquiry.create", map[string]any{"inquiry_id": q.ID, "type": q.RequestType})
	return render(c, "inquire_done", fiber.Map{"Q": q})
}
