package models

import "time"

// Announcement is a notice published by a warden or admin. A nil BlockID means global.
type Announcement struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Message     string    `db:"message" json:"message"`
	BlockID     *string   `db:"block_id" json:"blockId,omitempty"`
	CreatedByID string    `db:"created_by_id" json:"createdById"`
	CreatedBy   string    `db:"created_by_name" json:"createdBy,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// AnnouncementFilter allows paginating announcements.
type AnnouncementFilter struct {
	Page  int
	Limit int
}
