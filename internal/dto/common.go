package dto

// ListQuery carries pagination parameters shared by list endpoints.
type ListQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

// StatusUpdateRequest is the PATCH body for status transitions.
type StatusUpdateRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}
