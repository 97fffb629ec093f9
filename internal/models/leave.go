package models

import "time"

// LeaveStatus enumerates leave request states. Only PENDING is mutable.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "PENDING"
	LeaveApproved  LeaveStatus = "APPROVED"
	LeaveRejected  LeaveStatus = "REJECTED"
	LeaveCancelled LeaveStatus = "CANCELLED"
)

// LeaveRequest asks for time away from the hostel.
type LeaveRequest struct {
	ID          string      `db:"id" json:"id"`
	FromDate    time.Time   `db:"from_date" json:"fromDate"`
	ToDate      time.Time   `db:"to_date" json:"toDate"`
	Reason      string      `db:"reason" json:"reason"`
	Status      LeaveStatus `db:"status" json:"status"`
	StudentID   string      `db:"student_id" json:"studentId"`
	StudentName string      `db:"student_name" json:"studentName,omitempty"`
	BlockID     *string     `db:"block_id" json:"blockId,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// LeaveFilter captures caller supplied leave list parameters.
type LeaveFilter struct {
	Status LeaveStatus
	Page   int
	Limit  int
}
