package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"installbay/internal/domain"
	"installbay/internal/events"
	"installbay/internal/metrics"
	"installbay/internal/repos"
	"installbay/internal/validate"
)

// BookingRequest is the public booking form.
type BookingRequest struct {
	Name         string
	Email        string
	Phone        string
	Service      string // InstallService slug
	VehicleYear  string
	VehicleMake  string
	VehicleModel string
	Date         string
	Time         string
	Notes        string
}

type BookingService struct {
	repo   repos.BookingRepo
	events events.Publisher
	now    func() time.Time
}

func NewBookingService(repo repos.BookingRepo, pub events.Publisher) *BookingService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &BookingService{repo: repo, events: pub, now: time.Now}
}

// Create validates the form and stores a pending booking priced from the
// service menu. The event is best effort; its error is returned alongside
// the stored booking so the caller can log it.
func (s *BookingService) Create(ctx context.Context, in BookingRequest) (domain.Booking, error) {
	b, err := s.build(in)
	if err != nil {
		return domain.Booking{}, err
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return domain.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	metrics.BookingsCreatedTotal.Inc()
	if err := s.events.Publish(ctx, events.New(events.BookingCreated, b.ID, b)); err != nil {
		return b, &PublishError{Err: err}
	}
	return b, nil
}

func (s *BookingService) build(in BookingRequest) (domain.Booking, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Booking{}, invalid("name")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return domain.Booking{}, invalid("email")
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return domain.Booking{}, invalid("phone")
	}
	svc, ok := domain.ServiceBySlug(in.Service)
	if !ok {
		return domain.Booking{}, invalid("service")
	}
	date, ok := validate.Date(in.Date)
	if !ok {
		return domain.Booking{}, invalid("date")
	}
	now := s.now().UTC()
	if date < now.Format(time.DateOnly) {
		return domain.Booking{}, invalid("date")
	}
	clock, ok := validate.Clock(in.Time)
	if !ok {
		return domain.Booking{}, invalid("time")
	}
	year, ok := validate.Year(in.VehicleYear)
	if !ok {
		return domain.Booking{}, invalid("vehicle_year")
	}
	notes, ok := validate.Text(in.Notes, 2000)
	if !ok {
		return domain.Booking{}, invalid("notes")
	}
	vmake, ok := validate.Text(in.VehicleMake, 50)
	if !ok {
		return domain.Booking{}, invalid("vehicle_make")
	}
	model, ok := validate.Text(in.VehicleModel, 50)
	if !ok {
		return domain.Booking{}, invalid("vehicle_model")
	}

	return domain.Booking{
		ID:              uuid.NewString(),
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   phone,
		ServiceType:     svc.Name,
		ServicePrice:    svc.Price,
		ServiceDuration: svc.Duration,
		VehicleYear:     optional(year),
		VehicleMake:     optional(vmake),
		VehicleModel:    optional(model),
		ScheduledDate:   date,
		ScheduledTime:   clock,
		Notes:           notes,
		Status:          domain.BookingPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (s *BookingService) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalid("status")
	}
	return s.repo.List(ctx, f)
}

func (s *BookingService) Get(ctx context.Context, id string) (domain.Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Booking{}, ErrNotFound
	}
	return b, err
}

// UpdateStatus lets an admin move a booking to any defined status.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	if !status.Valid() {
		return domain.Booking{}, invalid("status")
	}
	b, err := s.repo.UpdateStatus(ctx, id, status, s.now().UTC())
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Booking{}, ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, fmt.Errorf("update booking %s: %w", id, err)
	}
	if err := s.events.Publish(ctx, events.New(events.BookingStatusChanged, b.ID, map[string]any{"status": b.Status})); err != nil {
		return b, &PublishError{Err: err}
	}
	return b, nil
}

// Counts returns a count for every status, zero included.
func (s *BookingService) Counts(ctx context.Context) (map[domain.BookingStatus]int, error) {
	got, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.BookingStatus]int, len(domain.BookingStatuses))
	for _, st := range domain.BookingStatuses {
		out[st] = got[st]
	}
	return out, nil
}

// PublishError reports that a change was stored but its event was not sent.
type PublishError struct{ Err error }

func (e *PublishError) Error() string { return "publish event: " + e.Err.Error() }
func (e *PublishError) Unwrap() error { return e.Err }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
