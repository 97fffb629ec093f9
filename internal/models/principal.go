package models

// Principal is the verified identity attached to a request. Scope fields are derived
// from stored records, never from client input.
type Principal struct {
	UserID string
	Email  string
	Role   UserRole

	// StudentID is set for students that have a student record.
	StudentID string
	// RoomID is the student's current room, if any.
	RoomID string
	// BlockID is the warden's assigned block, or the block of a student's room.
	BlockID string
}

// HasStudentScope reports whether the principal owns a student record.
func (p *Principal) HasStudentScope() bool {
	return p != nil && p.Role == RoleStudent && p.StudentID != ""
}
