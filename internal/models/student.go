package models

import "time"

// Student is a resident record linked to a STUDENT user.
type Student struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	RollNo        string    `db:"roll_no" json:"rollNo"`
	ParentContact string    `db:"parent_contact" json:"parentContact,omitempty"`
	RoomID        *string   `db:"room_id" json:"roomId,omitempty"`
	FullName      string    `db:"full_name" json:"fullName"`
	Email         string    `db:"email" json:"email"`
	RoomNumber    *string   `db:"room_number" json:"roomNumber,omitempty"`
	BlockID       *string   `db:"block_id" json:"blockId,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// StudentFilter captures caller supplied student list parameters.
type StudentFilter struct {
	RoomID         string
	UnassignedOnly bool
	Search         string
	Page           int
	Limit          int
}
