package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"installbay/internal/domain"
)

const bookingCols = `id, customer_name, customer_email, customer_phone, service_type,
  service_price, service_duration, vehicle_year, vehicle_make, vehicle_model,
  scheduled_date, scheduled_time, notes, status, deposit_amount, deposit_paid_at,
  charge_id, created_at, updated_at`

// SQLBookingRepo stores bookings through a direct database connection.
type SQLBookingRepo struct{ db *sqlx.DB }

func NewSQLBookingRepo(db *sqlx.DB) *SQLBookingRepo { return &SQLBookingRepo{db: db} }

func (r *SQLBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	_, err := r.db.NamedExecContext(ctx, `
	  INSERT INTO bookings (`+bookingCols+`)
	  VALUES (:id, :customer_name, :customer_email, :customer_phone, :service_type,
	    :service_price, :service_duration, :vehicle_year, :vehicle_make, :vehicle_model,
	    :scheduled_date, :scheduled_time, :notes, :status, :deposit_amount, :deposit_paid_at,
	    :charge_id, :created_at, :updated_at)
	`, b)
	return err
}

func (r *SQLBookingRepo) Get(ctx context.Context, id string) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.GetContext(ctx, &b, r.db.Rebind(`SELECT `+bookingCols+` FROM bookings WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, ErrNotFound
	}
	return b, err
}

func (r *SQLBookingRepo) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings`
	var args []any
	if f.Status != "" {
		q += ` WHERE status = ?`
		args = append(args, f.Status)
	}
	q += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limitOr(f.Limit), max(f.Offset, 0))

	out := []domain.Booking{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...)
	return out, err
}

func (r *SQLBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, at time.Time) (domain.Booking, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`), status, at, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Booking{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *SQLBookingRepo) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error) {
	var rows []struct {
		Status domain.BookingStatus `db:"status"`
		N      int                  `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS n FROM bookings GROUP BY status`); err != nil {
		return nil, err
	}
	out := make(map[domain.BookingStatus]int, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
