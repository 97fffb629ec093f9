package models

import "time"

// ComplaintStatus enumerates complaint lifecycle states.
type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "OPEN"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
	ComplaintClosed     ComplaintStatus = "CLOSED"
)

// Complaint is raised by a student against hostel facilities.
type Complaint struct {
	ID          string          `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Status      ComplaintStatus `db:"status" json:"status"`
	StudentID   string          `db:"student_id" json:"studentId"`
	StudentName string          `db:"student_name" json:"studentName,omitempty"`
	BlockID     *string         `db:"block_id" json:"blockId,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// ComplaintFilter captures caller supplied complaint list parameters.
type ComplaintFilter struct {
	Status ComplaintStatus
	Page   int
	Limit  int
}
