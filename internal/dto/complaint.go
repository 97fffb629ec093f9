package dto

// CreateComplaintRequest raises a complaint. StudentID is optional and must match the caller.
type CreateComplaintRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=2000"`
	StudentID   string `json:"studentId" validate:"omitempty,max=64"`
}

// ComplaintListQuery filters complaints.
type ComplaintListQuery struct {
	ListQuery
	Status string `form:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
}
