package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"installbay/internal/domain"
)

const inquiryCols = `id, product_id, product_name, product_price, request_type,
  customer_name, customer_email, customer_phone, message, status, admin_note,
  created_at, updated_at`

type SQLInquiryRepo struct{ db *sqlx.DB }

func NewSQLInquiryRepo(db *sqlx.DB) *SQLInquiryRepo { return &SQLInquiryRepo{db: db} }

func (r *SQLInquiryRepo) Create(ctx context.Context, q *domain.Inquiry) error {
	_, err := r.db.NamedExecContext(ctx, `
	  INSERT INTO inquiries (`+inquiryCols+`)
	  VALUES (:id, :product_id, :product_name, :product_price, :request_type,
	    :customer_name, :customer_email, :customer_phone, :message, :status, :admin_note,
	    :created_at, :updated_at)
	`, q)
	return err
}

func (r *SQLInquiryRepo) Get(ctx context.Context, id string) (domain.Inquiry, error) {
	var q domain.Inquiry
	err := r.db.GetContext(ctx, &q, r.db.Rebind(`SELECT `+inquiryCols+` FROM inquiries WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Inquiry{}, ErrNotFound
	}
	return q, err
}

func (r *SQLInquiryRepo) List(ctx context.Context, f domain.InquiryFilter) ([]domain.Inquiry, error) {
	q := `SELECT ` + inquiryCols + ` FROM inquiries`
	var args []any
	if f.Status != "" {
		q += ` WHERE status = ?`
		args = append(args, f.Status)
	}
	q += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limitOr(f.Limit), max(f.Offset, 0))

	out := []domain.Inquiry{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...)
	return out, err
}

// Update sets the status and, when note is non-nil, the admin note.
func (r *SQLInquiryRepo) Update(ctx context.Context, id string, status domain.InquiryStatus, note *string, at time.Time) (domain.Inquiry, error) {
	var (
		res sql.Result
		err error
	)
	if note != nil {
		res, err = r.db.ExecContext(ctx, r.db.Rebind(`UPDATE inquiries SET status = ?, admin_note = ?, updated_at = ? WHERE id = ?`), status, *note, at, id)
	} else {
		res, err = r.db.ExecContext(ctx, r.db.Rebind(`UPDATE inquiries SET status = ?, updated_at = ? WHERE id = ?`), status, at, id)
	}
	if err != nil {
		return domain.Inquiry{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Inquiry{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *SQLInquiryRepo) CountByStatus(ctx context.Context) (map[domain.InquiryStatus]int, error) {
	var rows []struct {
		Status domain.InquiryStatus `db:"status"`
		N      int                  `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS n FROM inquiries GROUP BY status`); err != nil {
		return nil, err
	}
	out := make(map[domain.InquiryStatus]int, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
