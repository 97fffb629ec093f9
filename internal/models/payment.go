package models

import "time"

// PaymentStatus enumerates ledger entry states.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentPending PaymentStatus = "PENDING"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentFailed:
		return true
	}
	return false
}

// Payment is an append-only ledger entry. Amount is stored in minor units.
type Payment struct {
	ID          string        `db:"id" json:"id"`
	StudentID   string        `db:"student_id" json:"studentId"`
	StudentName string        `db:"student_name" json:"studentName,omitempty"`
	Amount      int64         `db:"amount" json:"amount"`
	Status      PaymentStatus `db:"status" json:"status"`
	PaymentDate time.Time     `db:"payment_date" json:"paymentDate"`
	RecordedBy  string        `db:"recorded_by_id" json:"recordedById"`
}

// PaymentFilter captures caller supplied payment list parameters.
type PaymentFilter struct {
	Status PaymentStatus
	From   *time.Time
	To     *time.Time // exclusive
	Page   int
	Limit  int
}
