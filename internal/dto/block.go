package dto

// CreateBlockRequest creates a residential block.
type CreateBlockRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}
