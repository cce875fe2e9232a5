package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"installbay/internal/domain"
	"installbay/internal/repos"
)

func memdb(t *testing.T) (*repos.SQLBookingRepo, *repos.SQLInquiryRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return repos.NewSQLBookingRepo(db), repos.NewSQLInquiryRepo(db)
}

func booking(id string, status domain.BookingStatus, created time.Time) *domain.Booking {
	year := "2019"
	return &domain.Booking{
		ID:              id,
		CustomerName:    "Dana Ruiz",
		CustomerEmail:   "dana@example.com",
		CustomerPhone:   "555-0100",
		ServiceType:     "Head unit install",
		ServicePrice:    14999,
		ServiceDuration: 90,
		VehicleYear:     &year,
		ScheduledDate:   "2026-11-02",
		ScheduledTime:   "10:30",
		Status:          status,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func TestBookingRepo_CreateGetList(t *testing.T) {
	ctx := context.Background()
	bookings, _ := memdb(t)
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, bookings.Create(ctx, booking("b1", domain.BookingPending, base)))
	require.NoError(t, bookings.Create(ctx, booking("b2", domain.BookingConfirmed, base.Add(time.Hour))))
	require.NoError(t, bookings.Create(ctx, booking("b3", domain.BookingPending, base.Add(2*time.Hour))))

	got, err := bookings.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(14999), got.ServicePrice)
	require.NotNil(t, got.VehicleYear)
	assert.Equal(t, "2019", *got.VehicleYear)
	assert.Nil(t, got.VehicleMake)
	assert.Equal(t, "2026-11-02", got.ScheduledDate)

	all, err := bookings.List(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b3", all[0].ID, "newest first")

	pending, err := bookings.List(ctx, domain.BookingFilter{Status: domain.BookingPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	page, err := bookings.List(ctx, domain.BookingFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b2", page[0].ID)
}

func TestBookingRepo_UpdateStatusAndCounts(t *testing.T) {
	ctx := context.Background()
	bookings, _ := memdb(t)
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, bookings.Create(ctx, booking("b1", domain.BookingPending, now)))
	require.NoError(t, bookings.Create(ctx, booking("b2", domain.BookingPending, now)))

	b, err := bookings.UpdateStatus(ctx, "b1", domain.BookingCompleted, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)

	_, err = bookings.UpdateStatus(ctx, "missing", domain.BookingCompleted, now)
	assert.ErrorIs(t, err, repos.ErrNotFound)

	_, err = bookings.Get(ctx, "missing")
	assert.ErrorIs(t, err, repos.ErrNotFound)

	counts, err := bookings.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.BookingPending])
	assert.Equal(t, 1, counts[domain.BookingCompleted])
}

func TestInquiryRepo_UpdateKeepsNoteWhenNil(t *testing.T) {
	ctx := context.Background()
	_, inquiries := memdb(t)
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	q := &domain.Inquiry{
		ID:            "q1",
		ProductID:     "77",
		ProductName:   "12in Subwoofer",
		ProductPrice:  decimal.RequireFromString("149.99"),
		RequestType:   domain.RequestBackorder,
		CustomerName:  "Sam",
		CustomerEmail: "sam@example.com",
		Message:       "When is it back?",
		Status:        domain.InquiryPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, inquiries.Create(ctx, q))

	note := "called back"
	got, err := inquiries.Update(ctx, "q1", domain.InquiryContacted, &note, now)
	require.NoError(t, err)
	require.NotNil(t, got.AdminNote)
	assert.Equal(t, "called back", *got.AdminNote)
	assert.True(t, got.ProductPrice.Equal(decimal.RequireFromString("149.99")))

	got, err = inquiries.Update(ctx, "q1", domain.InquiryFulfilled, nil, now)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryFulfilled, got.Status)
	require.NotNil(t, got.AdminNote)
	assert.Equal(t, "called back", *got.AdminNote)

	list, err := inquiries.List(ctx, domain.InquiryFilter{Status: domain.InquiryFulfilled})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	counts, err := inquiries.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.InquiryStatus]int{domain.InquiryFulfilled: 1}, counts)
}
