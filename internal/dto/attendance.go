package dto

import "github.com/noah-isme/hostel-api/internal/models"

// AttendanceEntry marks one student.
type AttendanceEntry struct {
	StudentID string `json:"studentId" validate:"required"`
	Present   *bool  `json:"present" validate:"required"`
}

// MarkAttendanceRequest marks attendance for a day, today when Date is empty.
type MarkAttendanceRequest struct {
	Date    string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Entries []AttendanceEntry `json:"entries" validate:"required,min=1,max=500,dive"`
}

// MarkAttendanceResult reports created records and students already marked that day.
type MarkAttendanceResult struct {
	Created []models.Attendance `json:"created"`
	Skipped []string            `json:"skipped"`
}

// AttendanceListQuery selects a date window, today when both bounds are empty.
type AttendanceListQuery struct {
	ListQuery
	From      string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	StudentID string `form:"studentId"`
}
