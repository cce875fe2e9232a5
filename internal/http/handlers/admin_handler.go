package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"installbay/internal/domain"
	applog "installbay/internal/log"
	"installbay/internal/services"
	"installbay/internal/validate"
)

type AdminHandler struct {
	Bookings  *services.BookingService
	Inquiries *services.InquiryService
}

type statusCount struct {
	Status string
	N      int
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	bc, err := h.Bookings.Counts(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.dashboard.bookings.fail", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load bookings"})
	}
	ic, err := h.Inquiries.Counts(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.dashboard.inquiries.fail", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load inquiries"})
	}
	upcoming, err := h.Bookings.List(c.UserContext(), domain.BookingFilter{Status: domain.BookingPending, Limit: 10})
	if err != nil {
		applog.Error(c, "admin.dashboard.pending.fail", err, nil)
	}

	var bookings, inquiries []statusCount
	for _, s := range domain.BookingStatuses {
		bookings = append(bookings, statusCount{Status: string(s), N: bc[s]})
	}
	for _, s := range domain.InquiryStatuses {
		inquiries = append(inquiries, statusCount{Status: string(s), N: ic[s]})
	}
	return render(c, "admin_dashboard", fiber.Map{
		"BookingCounts": bookings,
		"InquiryCounts": inquiries,
		"Pending":       upcoming,
	})
}

// GET /admin/bookings?status=
func (h *AdminHandler) BookingsPage(c *fiber.Ctx) error {
	status := domain.BookingStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		applog.Security(c, "validation.fail", map[string]any{"field": "status"})
		status = ""
	}
	offset, _ := validate.Offset(c.Query("offset"))
	list, err := h.Bookings.List(c.UserContext(), domain.BookingFilter{Status: status, Limit: 100, Offset: offset})
	if err != nil {
		applog.Error(c, "admin.bookings.list.fail", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load bookings"})
	}
	return render(c, "admin_bookings", fiber.Map{
		"Bookings": list, "Status": string(status), "Statuses": domain.BookingStatuses,
	})
}

// GET /admin/bookings/:id
func (h *AdminHandler) BookingPage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Booking not found")
	}
	b, err := h.Bookings.Get(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "Booking not found")
	}
	if err != nil {
		applog.Error(c, "admin.booking.get.fail", err, map[string]any{"booking_id": id})
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load booking"})
	}
	return render(c, "admin_booking", fiber.Map{"B": b, "Statuses": domain.BookingStatuses})
}

// POST /admin/bookings/:id/status
func (h *AdminHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	status := domain.BookingStatus(c.FormValue("status"))
	if !ok || status == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing id or status")
	}
	b, err := h.Bookings.UpdateStatus(c.UserContext(), id, status)
	var pe *services.PublishError
	switch {
	case errors.Is(err, services.ErrInvalid):
		applog.Security(c, "validation.fail", map[string]any{"field": "status", "value": string(status)})
		return c.Status(fiber.StatusBadRequest).SendString("invalid status")
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, "Booking not found")
	case errors.As(err, &pe):
		applog.Error(c, "admin.bookings.event.fail", err, map[string]any{"booking_id": id})
	case err != nil:
		applog.Error(c, "admin.bookings.update.fail", err, map[string]any{"booking_id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("could not update status")
	}
	applog.Audit(c, "admin.bookings.update", map[string]any{"booking_id": id, "status": string(b.Status)})
	return c.Redirect("/admin/bookings/"+id, fiber.StatusSeeOther)
}

// GET /admin/inquiries?status=
func (h *AdminHandler) InquiriesPage(c *fiber.Ctx) error {
	status := domain.InquiryStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		applog.Security(c, "validation.fail", map[string]any{"field": "status"})
		status = ""
	}
	offset, _ := validate.Offset(c.Query("offset"))
	list, err := h.Inquiries.List(c.UserContext(), domain.InquiryFilter{Status: status, Limit: 100, Offset: offset})
	if err != nil {
		applog.Error(c, "admin.inquiries.list.fail", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load inquiries"})
	}
	return render(c, "admin_inquiries", fiber.Map{
		"Inquiries": list, "Status": string(status), "Statuses": domain.InquiryStatuses,
	})
}

// POST /admin/inquiries/:id
func (h *AdminHandler) UpdateInquiry(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	status := domain.InquiryStatus(c.FormValue("status"))
	if !ok || status == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing id or status")
	}
	var note *string
	if c.Request().PostArgs().Has("note") {
		n := c.FormValue("note")
		note = &n
	}
	q, err := h.Inquiries.Triage(c.UserContext(), id, status, note)
	var pe *services.PublishError
	switch {
	case errors.Is(err, services.ErrInvalid):
		applog.Security(c, "validation.fail", map[string]any{"field": "status", "value": string(status)})
		return c.Status(fiber.StatusBadRequest).SendString("invalid status or note")
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, "Inquiry not found")
	case errors.As(err, &pe):
		applog.Error(c, "admin.inquiries.event.fail", err, map[string]any{"inquiry_id": id})
	case err != nil:
		applog.Error(c, "admin.inquiries.update.fail", err, map[string]any{"inquiry_id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("could not update inquiry")
	}
	applog.Audit(c, "admin.inquiries.update", map[string]any{"inquiry_id": id, "status": string(q.Status)})
	return c.Redirect("/admin/inquiries", fiber.StatusSeeOther)
}
