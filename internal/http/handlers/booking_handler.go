package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"installbay/internal/domain"
	applog "installbay/internal/log"
	"installbay/internal/services"
)

type BookingHandler struct {
	Bookings *services.BookingService
}

// GET /book
func (h *BookingHandler) Form(c *fiber.Ctx) error {
	return render(c, "book", bookingPage(services.BookingRequest{Service: c.Query("service")}, ""))
}

// POST /book
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	in := services.BookingRequest{
		Name:         c.FormValue("name"),
		Email:        c.FormValue("email"),
		Phone:        c.FormValue("phone"),
		Service:      c.FormValue("service"),
		VehicleYear:  c.FormValue("vehicle_year"),
		VehicleMake:  c.FormValue("vehicle_make"),
		VehicleModel: c.FormValue("vehicle_model"),
		Date:         c.FormValue("date"),
		Time:         c.FormValue("time"),
		Notes:        c.FormValue("notes"),
	}

	b, err := h.Bookings.Create(c.UserContext(), in)
	var (
		fe *services.FieldError
		pe *services.PublishError
	)
	switch {
	case errors.As(err, &fe):
		applog.Security(c, "validation.fail", map[string]any{"form": "booking", "field": fe.Field})
		return renderStatus(c, fiber.StatusBadRequest, "book", bookingPage(in, "Please check the "+fe.Field+" field."))
	case errors.As(err, &pe):
		applog.Error(c, "booking.event.fail", err, map[string]any{"booking_id": b.ID})
	case err != nil:
		applog.Error(c, "booking.create.fail", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "book", bookingPage(in, "We could not save your booking. Please call the shop."))
	}

	applog.Audit(c, "booking.create", map[string]any{"booking_id": b.ID, "service": b.ServiceType, "date": b.ScheduledDate})
	return render(c, "book_done", fiber.Map{"B": b})
}

func bookingPage(in services.BookingRequest, errMsg string) fiber.Map {
	return fiber.Map{
		"Form":     in,
		"Services": domain.InstallServices,
		"MinDate":  time.Now().Format(time.DateOnly),
		"Err":      errMsg,
	}
}
