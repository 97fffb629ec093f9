package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

func TestComplaintTransitions(t *testing.T) {
	w := warden("block-a")
	cases := []struct {
		from, to models.ComplaintStatus
		legal    bool
	}{
		{models.ComplaintOpen, models.ComplaintInProgress, true},
		{models.ComplaintOpen, models.ComplaintResolved, true},
		{models.ComplaintInProgress, models.ComplaintResolved, true},
		{models.ComplaintOpen, models.ComplaintClosed, true},
		{models.ComplaintInProgress, models.ComplaintClosed, true},
		{models.ComplaintResolved, models.ComplaintClosed, true},
		{models.ComplaintResolved, models.ComplaintOpen, false},
		{models.ComplaintInProgress, models.ComplaintOpen, false},
		{models.ComplaintOpen, models.ComplaintOpen, false},
		{models.ComplaintClosed, models.ComplaintClosed, false},
		{models.ComplaintClosed, models.ComplaintResolved, false},
	}
	for _, tc := range cases {
		err := ComplaintTransition(w, tc.from, tc.to)
		if tc.legal {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			continue
		}
		assert.ErrorIs(t, err, appErrors.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
	}
}

func TestClosedToOpenDeniedForEveryRole(t *testing.T) {
	for _, p := range []*models.Principal{admin(), warden("block-a"), student("s1", "r1", "block-a"), nil} {
		err := ComplaintTransition(p, models.ComplaintClosed, models.ComplaintOpen)
		assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)
	}
}

func TestComplaintTransitionRequiresStaff(t *testing.T) {
	err := ComplaintTransition(student("s1", "", ""), models.ComplaintOpen, models.ComplaintClosed)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestComplaintTransitionRejectsUnknownStatus(t *testing.T) {
	err := ComplaintTransition(admin(), models.ComplaintOpen, "DONE")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestLeaveTerminalStatesAreImmutable(t *testing.T) {
	w := warden("block-a")
	assert.NoError(t, LeaveTransition(w, models.LeavePending, models.LeaveApproved))
	assert.ErrorIs(t, LeaveTransition(w, models.LeaveApproved, models.LeaveRejected), appErrors.ErrInvalidTransition)
	assert.ErrorIs(t, LeaveTransition(w, models.LeaveRejected, models.LeavePending), appErrors.ErrInvalidTransition)
	assert.ErrorIs(t, LeaveTransition(student("s1", "", ""), models.LeaveCancelled, models.LeavePending), appErrors.ErrInvalidTransition)
	assert.ErrorIs(t, LeaveTransition(admin(), models.LeavePending, models.LeavePending), appErrors.ErrInvalidTransition)
}

func TestLeaveTransitionActors(t *testing.T) {
	s := student("s1", "", "")
	assert.NoError(t, LeaveTransition(s, models.LeavePending, models.LeaveCancelled))
	assert.ErrorIs(t, LeaveTransition(s, models.LeavePending, models.LeaveApproved), appErrors.ErrForbidden)
	assert.ErrorIs(t, LeaveTransition(warden("block-a"), models.LeavePending, models.LeaveCancelled), appErrors.ErrForbidden)
	assert.NoError(t, LeaveTransition(admin(), models.LeavePending, models.LeaveRejected))
}

func TestRoomAssignmentPreconditions(t *testing.T) {
	room := models.Room{ID: "r1", Capacity: 4, Occupied: 3}
	assert.NoError(t, RoomAssignment(room, models.Student{ID: "s1"}))

	full := models.Room{ID: "r1", Capacity: 4, Occupied: 4}
	assert.ErrorIs(t, RoomAssignment(full, models.Student{ID: "s1"}), appErrors.ErrCapacityExceeded)

	housed := "r2"
	assert.ErrorIs(t, RoomAssignment(room, models.Student{ID: "s1", RoomID: &housed}), appErrors.ErrInvalidTransition)
}

func TestStampStudent(t *testing.T) {
	p := student("s1", "", "")
	id, err := StampStudent(p, "")
	assert.NoError(t, err)
	assert.Equal(t, "s1", id)

	id, err = StampStudent(p, "s1")
	assert.NoError(t, err)
	assert.Equal(t, "s1", id)

	_, err = StampStudent(p, "s2")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = StampStudent(admin(), "s1")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestShapeRoomHidesResidentsFromStudents(t *testing.T) {
	room := models.Room{ID: "r1", Capacity: 4, Occupied: 2}
	residents := []models.Resident{{StudentID: "s1"}, {StudentID: "s2"}}

	view := ShapeRoom(student("s1", "r1", "block-a"), room, residents)
	assert.Empty(t, view.Residents)
	assert.Equal(t, 2, view.Available)

	assert.Len(t, ShapeRoom(warden("block-a"), room, residents).Residents, 2)
}

func TestShapeStudentHidesParentContact(t *testing.T) {
	s := models.Student{ID: "s2", ParentContact: "+100"}
	assert.Empty(t, ShapeStudent(student("s1", "", ""), s).ParentContact)
	assert.Equal(t, "+100", ShapeStudent(student("s2", "", ""), s).ParentContact)
	assert.Equal(t, "+100", ShapeStudent(warden("block-a"), s).ParentContact)
}
