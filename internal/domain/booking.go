package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no_show"
)

// BookingStatuses is the display order used by the admin screens.
var BookingStatuses = []BookingStatus{
	BookingPending, BookingConfirmed, BookingInProgress,
	BookingCompleted, BookingCancelled, BookingNoShow,
}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Booking is an installation appointment. Rows are never deleted; cancelled
// and no_show end the lifecycle.
type Booking struct {
	ID              string        `json:"id" db:"id"`
	CustomerName    string        `json:"customer_name" db:"customer_name"`
	CustomerEmail   string        `json:"customer_email" db:"customer_email"`
	CustomerPhone   string        `json:"customer_phone" db:"customer_phone"`
	ServiceType     string        `json:"service_type" db:"service_type"`
	ServicePrice    int64         `json:"service_price" db:"service_price"` // cents
	ServiceDuration int           `json:"service_duration" db:"service_duration"` // minutes
	VehicleYear     *string       `json:"vehicle_year,omitempty" db:"vehicle_year"`
	VehicleMake     *string       `json:"vehicle_make,omitempty" db:"vehicle_make"`
	VehicleModel    *string       `json:"vehicle_model,omitempty" db:"vehicle_model"`
	ScheduledDate   string        `json:"scheduled_date" db:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime   string        `json:"scheduled_time" db:"scheduled_time"` // HH:MM
	Notes           string        `json:"notes" db:"notes"`
	Status          BookingStatus `json:"status" db:"status"`
	DepositAmount   *int64        `json:"deposit_amount,omitempty" db:"deposit_amount"` // cents
	DepositPaidAt   *time.Time    `json:"deposit_paid_at,omitempty" db:"deposit_paid_at"`
	ChargeID        *string       `json:"charge_id,omitempty" db:"charge_id"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// Vehicle renders the optional vehicle fields as one line.
func (b Booking) Vehicle() string {
	out := ""
	for _, p := range []*string{b.VehicleYear, b.VehicleMake, b.VehicleModel} {
		if p == nil || *p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += *p
	}
	return out
}

// BookingFilter narrows admin listings. Zero values mean "no filter".
type BookingFilter struct {
	Status BookingStatus
	Limit  int
	Offset int
}
