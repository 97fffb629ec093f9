package dto

// CreateRoomRequest creates a room. Wardens may omit BlockID to use their own block.
type CreateRoomRequest struct {
	RoomNumber string `json:"roomNumber" validate:"required,max=20"`
	Capacity   int    `json:"capacity" validate:"required,min=1,max=20"`
	BlockID    string `json:"blockId" validate:"omitempty,max=64"`
}

// RoomListQuery filters the room inventory.
type RoomListQuery struct {
	ListQuery
	BlockID   string `form:"blockId"`
	Available bool   `form:"available"`
}
