package repos

import (
	"context"
	"errors"
	"time"

	"installbay/internal/domain"
)

var ErrNotFound = errors.New("not found")

type BookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	Get(ctx context.Context, id string) (domain.Booking, error)
	List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, at time.Time) (domain.Booking, error)
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error)
}

type InquiryRepo interface {
	Create(ctx context.Context, q *domain.Inquiry) error
	Get(ctx context.Context, id string) (domain.Inquiry, error)
	List(ctx context.Context, f domain.InquiryFilter) ([]domain.Inquiry, error)
	Update(ctx context.Context, id string, status domain.InquiryStatus, note *string, at time.Time) (domain.Inquiry, error)
	CountByStatus(ctx context.Context) (map[domain.InquiryStatus]int, error)
}

const defaultLimit = 100

func limitOr(n int) int {
	if n <= 0 || n > 500 {
		return defaultLimit
	}
	return n
}
