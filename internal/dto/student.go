package dto

import "github.com/noah-isme/hostel-api/internal/models"

// CreateStudentRequest onboards a resident on behalf of a warden or admin.
type CreateStudentRequest struct {
	Email         string `json:"email" validate:"required,email"`
	FullName      string `json:"fullName" validate:"required,max=120"`
	RollNo        string `json:"rollNo" validate:"required,max=40"`
	ParentContact string `json:"parentContact" validate:"omitempty,max=40"`
	RoomID        string `json:"roomId" validate:"omitempty,max=64"`
}

// CreateStudentResponse returns the created record and its one-time password.
type CreateStudentResponse struct {
	Student           models.Student `json:"student"`
	TemporaryPassword string         `json:"temporaryPassword"`
}

// AssignRoomRequest is the PATCH body for room assignment.
type AssignRoomRequest struct {
	ID     string `json:"id" validate:"required"`
	RoomID string `json:"roomId" validate:"required"`
}

// StudentListQuery filters the resident list.
type StudentListQuery struct {
	ListQuery
	RoomID     string `form:"roomId"`
	Unassigned bool   `form:"unassigned"`
	Search     string `form:"search" validate:"omitempty,max=80"`
}
