package services

import (
	"context"
	"time"

	"installbay/internal/clover"
	"installbay/internal/commerce"
	"installbay/internal/domain"
	"installbay/internal/events"
	"installbay/internal/repos"
	"installbay/internal/supabase"
)

type memBookings struct {
	rows map[string]domain.Booking
	err  error
}

func newMemBookings() *memBookings { return &memBookings{rows: map[string]domain.Booking{}} }

func (m *memBookings) Create(_ context.Context, b *domain.Booking) error {
	if m.err != nil {
		return m.err
	}
	m.rows[b.ID] = *b
	return nil
}

func (m *memBookings) Get(_ context.Context, id string) (domain.Booking, error) {
	b, ok := m.rows[id]
	if !ok {
		return domain.Booking{}, repos.ErrNotFound
	}
	return b, nil
}

func (m *memBookings) List(_ context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for _, b := range m.rows {
		if f.Status == "" || b.Status == f.Status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id string, st domain.BookingStatus, at time.Time) (domain.Booking, error) {
	b, ok := m.rows[id]
	if !ok {
		return domain.Booking{}, repos.ErrNotFound
	}
	b.Status, b.UpdatedAt = st, at
	m.rows[id] = b
	return b, nil
}

func (m *memBookings) CountByStatus(context.Context) (map[domain.BookingStatus]int, error) {
	out := map[domain.BookingStatus]int{}
	for _, b := range m.rows {
		out[b.Status]++
	}
	return out, nil
}

type memInquiries struct {
	rows map[string]domain.Inquiry
}

func newMemInquiries() *memInquiries { return &memInquiries{rows: map[string]domain.Inquiry{}} }

func (m *memInquiries) Create(_ context.Context, q *domain.Inquiry) error {
	m.rows[q.ID] = *q
	return nil
}

func (m *memInquiries) Get(_ context.Context, id string) (domain.Inquiry, error) {
	q, ok := m.rows[id]
	if !ok {
		return domain.Inquiry{}, repos.ErrNotFound
	}
	return q, nil
}

func (m *memInquiries) List(context.Context, domain.InquiryFilter) ([]domain.Inquiry, error) {
	out := []domain.Inquiry{}
	for _, q := range m.rows {
		out = append(out, q)
	}
	return out, nil
}

func (m *memInquiries) Update(_ context.Context, id string, st domain.InquiryStatus, note *string, at time.Time) (domain.Inquiry, error) {
	q, ok := m.rows[id]
	if !ok {
		return domain.Inquiry{}, repos.ErrNotFound
	}
	q.Status, q.UpdatedAt = st, at
	if note != nil {
		q.AdminNote = note
	}
	m.rows[id] = q
	return q, nil
}

func (m *memInquiries) CountByStatus(context.Context) (map[domain.InquiryStatus]int, error) {
	out := map[domain.InquiryStatus]int{}
	for _, q := range m.rows {
		out[q.Status]++
	}
	return out, nil
}

type recPublisher struct {
	got []events.Event
	err error
}

func (r *recPublisher) Publish(_ context.Context, e events.Event) error {
	r.got = append(r.got, e)
	return r.err
}
func (r *recPublisher) Close() error { return nil }

type fakePOS struct {
	cats  []domain.Category
	err   error
	calls int
}

func (f *fakePOS) ListCategories(context.Context) (clover.Page[domain.Category], error) {
	f.calls++
	return clover.Page[domain.Category]{Elements: f.cats}, f.err
}

func (f *fakePOS) ListCustomers(context.Context, int, int) (clover.Page[domain.Customer], error) {
	f.calls++
	return clover.Page[domain.Customer]{}, f.err
}

func (f *fakePOS) ListItems(context.Context, int, int) (clover.Page[domain.Item], error) {
	f.calls++
	return clover.Page[domain.Item]{}, f.err
}

type fakeCatalog struct {
	products map[int]domain.Product
	err      error
}

func (f *fakeCatalog) ListProducts(_ context.Context, q commerce.ProductQuery) (commerce.ProductPage, error) {
	var page commerce.ProductPage
	for _, p := range f.products {
		if !q.Featured || p.IsFeatured {
			page.Data = append(page.Data, p)
		}
	}
	return page, f.err
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int) (domain.Product, error) {
	if f.err != nil {
		return domain.Product{}, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, notFoundErr()
	}
	return p, nil
}

type fakeAuth struct {
	users     map[string]supabase.User // access token -> user
	refreshed supabase.Session
	userErr   error
	refErr    error
	userCalls int
	refCalls  int
}

func (f *fakeAuth) SignIn(_ context.Context, email, _ string) (supabase.Session, error) {
	return supabase.Session{AccessToken: "a", RefreshToken: "r", User: supabase.User{ID: "u1", Email: email}}, nil
}

func (f *fakeAuth) Refresh(context.Context, string) (supabase.Session, error) {
	f.refCalls++
	return f.refreshed, f.refErr
}

func (f *fakeAuth) User(_ context.Context, access string) (supabase.User, error) {
	f.userCalls++
	if f.userErr != nil {
		return supabase.User{}, f.userErr
	}
	u, ok := f.users[access]
	if !ok {
		return supabase.User{}, unauthorizedErr()
	}
	return u, nil
}

func (f *fakeAuth) SignOut(context.Context, string) error { return nil }
