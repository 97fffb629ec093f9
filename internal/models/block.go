package models

import "time"

// Block is a residential grouping of rooms.
type Block struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Warden links a warden user to the block they supervise. BlockID is nil for unassigned wardens.
type Warden struct {
	ID      string  `db:"id" json:"id"`
	UserID  string  `db:"user_id" json:"userId"`
	BlockID *string `db:"block_id" json:"blockId,omitempty"`
}
