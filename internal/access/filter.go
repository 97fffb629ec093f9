package access

// Filter bounds the rows a decision grants. The zero value is unrestricted.
type Filter struct {
	// RestrictBlock limits rows to BlockID.
	RestrictBlock bool
	BlockID       string
	// IncludeUnassigned also admits rows with no block, such as students without a room.
	IncludeUnassigned bool
	// IncludeGlobal also admits rows published to every block.
	IncludeGlobal bool
	// StudentID limits rows to one owner.
	StudentID string
	// RoomID limits rows to one room.
	RoomID string
}

// Target describes the scope attributes of one loaded row. An empty BlockID means
// the row is not attached to any block.
type Target struct {
	StudentID string
	RoomID    string
	BlockID   string
}

// Unrestricted reports whether the filter admits every row.
func (f Filter) Unrestricted() bool {
	return !f.RestrictBlock && f.StudentID == "" && f.RoomID == ""
}

// Permits reports whether t falls inside the filter.
func (f Filter) Permits(t Target) bool {
	if f.StudentID != "" && t.StudentID != f.StudentID {
		return false
	}
	if f.RoomID != "" && t.RoomID != f.RoomID {
		return false
	}
	if f.RestrictBlock {
		if t.BlockID == "" {
			return f.IncludeUnassigned || f.IncludeGlobal
		}
		return t.BlockID == f.BlockID
	}
	return true
}

// TargetOf builds a Target from nullable identifiers.
func TargetOf(studentID string, roomID, blockID *string) Target {
	t := Target{StudentID: studentID}
	if roomID != nil {
		t.RoomID = *roomID
	}
	if blockID != nil {
		t.BlockID = *blockID
	}
	return t
}
