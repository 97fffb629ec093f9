package models

import "time"

// Room is a lettable room inside a block. Occupied never exceeds Capacity.
type Room struct {
	ID         string    `db:"id" json:"id"`
	RoomNumber string    `db:"room_number" json:"roomNumber"`
	Capacity   int       `db:"capacity" json:"capacity"`
	Occupied   int       `db:"occupied" json:"occupied"`
	BlockID    string    `db:"block_id" json:"blockId"`
	BlockName  string    `db:"block_name" json:"blockName,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Available reports the number of free beds.
func (r Room) Available() int {
	if r.Occupied >= r.Capacity {
		return 0
	}
	return r.Capacity - r.Occupied
}

// RoomFilter captures caller supplied room list parameters.
type RoomFilter struct {
	BlockID       string
	AvailableOnly bool
	Page          int
	Limit         int
}

// Resident is the public view of a student living in a room.
type Resident struct {
	StudentID string `db:"id" json:"studentId"`
	FullName  string `db:"full_name" json:"fullName"`
	RollNo    string `db:"roll_no" json:"rollNo"`
}
