package dto

// CreatePaymentRequest records a payment. Students pay for themselves; admins name the student.
type CreatePaymentRequest struct {
	Amount    float64 `json:"amount" validate:"required,gt=0,lte=10000000"`
	StudentID string  `json:"studentId" validate:"omitempty,max=64"`
	Status    string  `json:"status" validate:"omitempty,oneof=PAID PENDING FAILED"`
}

// PaymentListQuery filters the ledger.
type PaymentListQuery struct {
	ListQuery
	Status string `form:"status" validate:"omitempty,oneof=PAID PENDING FAILED"`
	From   string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}

// PaymentExportQuery selects the export format.
type PaymentExportQuery struct {
	PaymentListQuery
	Format string `form:"format" validate:"omitempty,oneof=csv pdf"`
}
