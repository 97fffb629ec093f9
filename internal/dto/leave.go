package dto

// CreateLeaveRequest asks for leave. Dates use YYYY-MM-DD.
type CreateLeaveRequest struct {
	FromDate  string `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate    string `json:"toDate" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"required,max=500"`
	StudentID string `json:"studentId" validate:"omitempty,max=64"`
}

// LeaveListQuery filters leave requests.
type LeaveListQuery struct {
	ListQuery
	Status string `form:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
}
