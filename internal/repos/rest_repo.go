package repos

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"installbay/internal/domain"
	"installbay/internal/supabase"
)

// RESTBookingRepo stores bookings through the hosted data API.
type RESTBookingRepo struct{ api *supabase.REST }

func NewRESTBookingRepo(api *supabase.REST) *RESTBookingRepo { return &RESTBookingRepo{api: api} }

func (r *RESTBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	var rows []domain.Booking
	if err := r.api.Insert(ctx, "bookings", b, &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		*b = rows[0]
	}
	return nil
}

func (r *RESTBookingRepo) Get(ctx context.Context, id string) (domain.Booking, error) {
	var rows []domain.Booking
	q := url.Values{"select": {"*"}, "id": {supabase.Eq(id)}, "limit": {"1"}}
	if err := r.api.Select(ctx, "bookings", q, &rows); err != nil {
		return domain.Booking{}, err
	}
	if len(rows) == 0 {
		return domain.Booking{}, ErrNotFound
	}
	return rows[0], nil
}

func (r *RESTBookingRepo) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	q := pageQuery(f.Limit, f.Offset)
	if f.Status != "" {
		q.Set("status", supabase.Eq(string(f.Status)))
	}
	rows := []domain.Booking{}
	err := r.api.Select(ctx, "bookings", q, &rows)
	return rows, err
}

func (r *RESTBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, at time.Time) (domain.Booking, error) {
	var rows []domain.Booking
	patch := map[string]any{"status": status, "updated_at": at}
	if err := r.api.Update(ctx, "bookings", url.Values{"id": {supabase.Eq(id)}}, patch, &rows); err != nil {
		return domain.Booking{}, err
	}
	if len(rows) == 0 {
		return domain.Booking{}, ErrNotFound
	}
	return rows[0], nil
}

func (r *RESTBookingRepo) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error) {
	var rows []struct {
		Status domain.BookingStatus `json:"status"`
	}
	if err := r.api.Select(ctx, "bookings", url.Values{"select": {"status"}}, &rows); err != nil {
		return nil, err
	}
	out := map[domain.BookingStatus]int{}
	for _, row := range rows {
		out[row.Status]++
	}
	return out, nil
}

// RESTInquiryRepo stores inquiries through the hosted data API.
type RESTInquiryRepo struct{ api *supabase.REST }

func NewRESTInquiryRepo(api *supabase.REST) *RESTInquiryRepo { return &RESTInquiryRepo{api: api} }

func (r *RESTInquiryRepo) Create(ctx context.Context, q *domain.Inquiry) error {
	var rows []domain.Inquiry
	if err := r.api.Insert(ctx, "inquiries", q, &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		*q = rows[0]
	}
	return nil
}

func (r *RESTInquiryRepo) Get(ctx context.Context, id string) (domain.Inquiry, error) {
	var rows []domain.Inquiry
	q := url.Values{"select": {"*"}, "id": {supabase.Eq(id)}, "limit": {"1"}}
	if err := r.api.Select(ctx, "inquiries", q, &rows); err != nil {
		return domain.Inquiry{}, err
	}
	if len(rows) == 0 {
		return domain.Inquiry{}, ErrNotFound
	}
	return rows[0], nil
}

func (r *RESTInquiryRepo) List(ctx context.Context, f domain.InquiryFilter) ([]domain.Inquiry, error) {
	q := pageQuery(f.Limit, f.Offset)
	if f.Status != "" {
		q.Set("status", supabase.Eq(string(f.Status)))
	}
	rows := []domain.Inquiry{}
	err := r.api.Select(ctx, "inquiries", q, &rows)
	return rows, err
}

func (r *RESTInquiryRepo) Update(ctx context.Context, id string, status domain.InquiryStatus, note *string, at time.Time) (domain.Inquiry, error) {
	patch := map[string]any{"status": status, "updated_at": at}
	if note != nil {
		patch["admin_note"] = *note
	}
	var rows []domain.Inquiry
	if err := r.api.Update(ctx, "inquiries", url.Values{"id": {supabase.Eq(id)}}, patch, &rows); err != nil {
		return domain.Inquiry{}, err
	}
	if len(rows) == 0 {
		return domain.Inquiry{}, ErrNotFound
	}
	return rows[0], nil
}

func (r *RESTInquiryRepo) CountByStatus(ctx context.Context) (map[domain.InquiryStatus]int, error) {
	var rows []struct {
		Status domain.InquiryStatus `json:"status"`
	}
	if err := r.api.Select(ctx, "inquiries", url.Values{"select": {"status"}}, &rows); err != nil {
		return nil, err
	}
	out := map[domain.InquiryStatus]int{}
	for _, row := range rows {
		out[row.Status]++
	}
	return out, nil
}

func pageQuery(limit, offset int) url.Values {
	return url.Values{
		"select": {"*"},
		"order":  {"created_at.desc"},
		"limit":  {strconv.Itoa(limitOr(limit))},
		"offset": {strconv.Itoa(max(offset, 0))},
	}
}
