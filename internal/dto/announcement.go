package dto

// CreateAnnouncementRequest publishes an announcement. Only admins may set BlockID; omitting it
// publishes globally for admins and to the own block for wardens.
type CreateAnnouncementRequest struct {
	Title   string `json:"title" validate:"required,max=160"`
	Message string `json:"message" validate:"required,max=4000"`
	BlockID string `json:"blockId" validate:"omitempty,max=64"`
}
