package access

import (
	"fmt"

	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

var complaintTransitions = map[models.ComplaintStatus][]models.ComplaintStatus{
	models.ComplaintOpen:       {models.ComplaintInProgress, models.ComplaintResolved, models.ComplaintClosed},
	models.ComplaintInProgress: {models.ComplaintResolved, models.ComplaintClosed},
	models.ComplaintResolved:   {models.ComplaintClosed},
}

var leaveTransitions = map[models.LeaveStatus][]models.LeaveStatus{
	models.LeavePending: {models.LeaveApproved, models.LeaveRejected, models.LeaveCancelled},
}

// ValidComplaintStatus reports whether s is a known complaint state.
func ValidComplaintStatus(s models.ComplaintStatus) bool {
	switch s {
	case models.ComplaintOpen, models.ComplaintInProgress, models.ComplaintResolved, models.ComplaintClosed:
		return true
	}
	return false
}

// ValidLeaveStatus reports whether s is a known leave state.
func ValidLeaveStatus(s models.LeaveStatus) bool {
	switch s {
	case models.LeavePending, models.LeaveApproved, models.LeaveRejected, models.LeaveCancelled:
		return true
	}
	return false
}

// ComplaintTransition checks that from→to is legal and that p may perform it.
// Scope is checked separately by the caller.
func ComplaintTransition(p *models.Principal, from, to models.ComplaintStatus) error {
	if !ValidComplaintStatus(to) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown complaint status %q", to))
	}
	if !contains(complaintTransitions[from], to) {
		return illegal(string(from), string(to))
	}
	if p == nil || (p.Role != models.RoleWarden && p.Role != models.RoleAdmin) {
		return appErrors.Denied("only wardens and admins may change complaint status")
	}
	return nil
}

// LeaveTransition checks that from→to is legal and that p may perform it. Decisions
// belong to staff, cancellation to the owning student.
func LeaveTransition(p *models.Principal, from, to models.LeaveStatus) error {
	if !ValidLeaveStatus(to) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown leave status %q", to))
	}
	if !contains(leaveTransitions[from], to) {
		return illegal(string(from), string(to))
	}
	if p == nil {
		return appErrors.ErrUnauthenticated
	}
	switch to {
	case models.LeaveCancelled:
		if p.Role != models.RoleStudent {
			return appErrors.Denied("only the requesting student may cancel a leave request")
		}
	default:
		if p.Role != models.RoleWarden && p.Role != models.RoleAdmin {
			return appErrors.Denied("only wardens and admins may decide leave requests")
		}
	}
	return nil
}

// RoomAssignment checks the capacity and occupancy preconditions of assigning student to room.
// The store re-checks both atomically when writing.
func RoomAssignment(room models.Room, student models.Student) error {
	if student.RoomID != nil && *student.RoomID != "" {
		return appErrors.Clone(appErrors.ErrInvalidTransition, "student already has a room")
	}
	if room.Occupied >= room.Capacity {
		return appErrors.ErrCapacityExceeded
	}
	return nil
}

// StampStudent returns the owner id for a record created by p. A client supplied id
// that differs from the principal's own record is rejected.
func StampStudent(p *models.Principal, supplied string) (string, error) {
	if !p.HasStudentScope() {
		return "", appErrors.Denied(ReasonNoStudent)
	}
	if supplied != "" && supplied != p.StudentID {
		return "", appErrors.Denied("studentId does not match the authenticated student")
	}
	return p.StudentID, nil
}

func illegal(from, to string) error {
	return appErrors.Transition(from, to)
}

func contains[T comparable](items []T, v T) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}
