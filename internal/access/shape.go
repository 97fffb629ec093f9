package access

import "github.com/noah-isme/hostel-api/internal/models"

// RoomView is the response shape of a room. Residents are only filled for staff.
type RoomView struct {
	models.Room
	Available int               `json:"available"`
	Residents []models.Resident `json:"residents,omitempty"`
}

// ShapeRoom builds the room payload for p. Students never see who else lives in a room.
func ShapeRoom(p *models.Principal, room models.Room, residents []models.Resident) RoomView {
	view := RoomView{Room: room, Available: room.Available()}
	if p != nil && (p.Role == models.RoleWarden || p.Role == models.RoleAdmin) {
		view.Residents = residents
	}
	return view
}

// ShapeStudent strips fields p may not see. Parent contact is visible to staff and the student themself.
func ShapeStudent(p *models.Principal, s models.Student) models.Student {
	if p == nil {
		s.ParentContact = ""
		return s
	}
	if p.Role == models.RoleStudent && p.StudentID != s.ID {
		s.ParentContact = ""
	}
	return s
}
