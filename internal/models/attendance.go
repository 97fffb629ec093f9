package models

import "time"

// Attendance records presence for one student on one day.
type Attendance struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"studentId"`
	StudentName string    `db:"student_name" json:"studentName,omitempty"`
	Date        time.Time `db:"date" json:"date"`
	Present     bool      `db:"present" json:"present"`
	MarkedByID  string    `db:"marked_by_id" json:"markedById"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// AttendanceFilter selects a date window. Zero dates default to today.
type AttendanceFilter struct {
	From      time.Time
	To        time.Time
	StudentID string
	Page      int
	Limit     int
}
