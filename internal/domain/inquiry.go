package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestType string

const (
	RequestInquiry   RequestType = "inquiry"
	RequestBackorder RequestType = "backorder"
)

func (t RequestType) Valid() bool {
	return t == RequestInquiry || t == RequestBackorder
}

type InquiryStatus string

const (
	InquiryPending   InquiryStatus = "pending"
	InquiryContacted InquiryStatus = "contacted"
	InquiryFulfilled InquiryStatus = "fulfilled"
	InquiryClosed    InquiryStatus = "closed"
)

var InquiryStatuses = []InquiryStatus{
	InquiryPending, InquiryContacted, InquiryFulfilled, InquiryClosed,
}

func (s InquiryStatus) Valid() bool {
	for _, v := range InquiryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Inquiry is a customer question or backorder request about one product.
// The product fields are a snapshot taken when the form was submitted.
type Inquiry struct {
	ID            string          `json:"id" db:"id"`
	ProductID     string          `json:"product_id" db:"product_id"`
	ProductName   string          `json:"product_name" db:"product_name"`
	ProductPrice  decimal.Decimal `json:"product_price" db:"product_price"`
	RequestType   RequestType     `json:"request_type" db:"request_type"`
	CustomerName  string          `json:"customer_name" db:"customer_name"`
	CustomerEmail string          `json:"customer_email" db:"customer_email"`
	CustomerPhone string          `json:"customer_phone" db:"customer_phone"`
	Message       string          `json:"message" db:"message"`
	Status        InquiryStatus   `json:"status" db:"status"`
	AdminNote     *string         `json:"admin_note,omitempty" db:"admin_note"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

type InquiryFilter struct {
	Status InquiryStatus
	Limit  int
	Offset int
}
