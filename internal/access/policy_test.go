package access

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

func student(id, roomID, blockID string) *models.Principal {
	return &models.Principal{UserID: "u-" + id, Role: models.RoleStudent, StudentID: id, RoomID: roomID, BlockID: blockID}
}

func warden(blockID string) *models.Principal {
	return &models.Principal{UserID: "u-warden-" + blockID, Role: models.RoleWarden, BlockID: blockID}
}

func admin() *models.Principal {
	return &models.Principal{UserID: "u-admin", Role: models.RoleAdmin}
}

type fixtureRow struct {
	studentID string
	roomID    string
	blockID   string
}

// fixtures spreads rows over three students, two blocks and an unassigned student.
func fixtures() []fixtureRow {
	var rows []fixtureRow
	blocks := []string{"block-a", "block-b", ""}
	for i := 0; i < 30; i++ {
		block := blocks[i%len(blocks)]
		room := ""
		if block != "" {
			room = fmt.Sprintf("%s-room-%d", block, i%4)
		}
		rows = append(rows, fixtureRow{studentID: fmt.Sprintf("s%d", i%5), roomID: room, blockID: block})
	}
	return rows
}

func TestStudentComplaintReadsOnlyOwnRecords(t *testing.T) {
	var pol Policy
	for _, sid := range []string{"s0", "s1", "s2", "s3", "s4", "s9"} {
		p := student(sid, "", "")
		for _, op := range []Operation{OpList, OpRead} {
			d := pol.Authorize(p, ResourceComplaint, op)
			require.True(t, d.Allowed)
			for _, row := range fixtures() {
				target := Target{StudentID: row.studentID, RoomID: row.roomID, BlockID: row.blockID}
				assert.Equal(t, row.studentID == sid, d.Permits(target), "student %s op %s row %+v", sid, op, row)
			}
		}
	}
}

func TestWardenRoomReadsOnlyOwnBlock(t *testing.T) {
	var pol Policy
	for _, block := range []string{"block-a", "block-b"} {
		d := pol.Authorize(warden(block), ResourceRoom, OpRead)
		require.True(t, d.Allowed)
		for _, row := range fixtures() {
			if row.blockID == "" {
				continue
			}
			assert.Equal(t, row.blockID == block, d.Permits(Target{RoomID: row.roomID, BlockID: row.blockID}))
		}
	}
}

func TestWardenStudentReadsIncludeUnassigned(t *testing.T) {
	var pol Policy
	for _, op := range []Operation{OpList, OpRead} {
		d := pol.Authorize(warden("block-a"), ResourceStudent, op)
		require.True(t, d.Allowed)
		for _, row := range fixtures() {
			want := row.blockID == "block-a" || row.roomID == ""
			assert.Equal(t, want, d.Permits(Target{StudentID: row.studentID, RoomID: row.roomID, BlockID: row.blockID}))
		}
	}
}

func TestWardenComplaintsExcludeUnassignedStudents(t *testing.T) {
	d := Policy{}.Authorize(warden("block-a"), ResourceComplaint, OpList)
	assert.False(t, d.Permits(Target{StudentID: "s1"}))
	assert.True(t, d.Permits(Target{StudentID: "s1", BlockID: "block-a"}))
	assert.False(t, d.Permits(Target{StudentID: "s1", BlockID: "block-b"}))
}

func TestAdminReadsAreUnrestricted(t *testing.T) {
	var pol Policy
	for _, res := range []Resource{ResourceBlock, ResourceRoom, ResourceStudent, ResourceComplaint, ResourceLeaveRequest, ResourceAnnouncement, ResourceAttendance, ResourcePayment} {
		for _, op := range []Operation{OpList, OpRead} {
			d := pol.Authorize(admin(), res, op)
			require.True(t, d.Allowed, "%s %s", res, op)
			assert.True(t, d.Filter.Unrestricted())
		}
	}
}

func TestMissingOrUnknownPrincipalIsUnauthenticated(t *testing.T) {
	var pol Policy
	for _, p := range []*models.Principal{nil, {}, {UserID: "u1", Role: "JANITOR"}} {
		d := pol.Authorize(p, ResourceRoom, OpList)
		assert.False(t, d.Allowed)
		assert.ErrorIs(t, d.Err(), appErrors.ErrUnauthenticated)
	}
}

func TestStudentDeniedInventoryAndForeignResources(t *testing.T) {
	var pol Policy
	p := student("s1", "room-1", "block-a")

	assert.False(t, pol.Authorize(p, ResourceRoom, OpList).Allowed)
	assert.False(t, pol.Authorize(p, ResourceRoom, OpCreate).Allowed)
	assert.False(t, pol.Authorize(p, ResourceStudent, OpList).Allowed)
	assert.False(t, pol.Authorize(p, ResourceAnnouncement, OpCreate).Allowed)
	assert.False(t, pol.Authorize(p, ResourceAttendance, OpCreate).Allowed)
	assert.False(t, pol.Authorize(p, ResourceComplaint, OpUpdateStatus).Allowed)
	assert.False(t, pol.Authorize(p, ResourceStats, OpRead).Allowed)

	room := pol.Authorize(p, ResourceRoom, OpRead)
	assert.True(t, room.Permits(Target{RoomID: "room-1", BlockID: "block-a"}))
	assert.False(t, room.Permits(Target{RoomID: "room-2", BlockID: "block-a"}))

	self := pol.Authorize(p, ResourceStudent, OpRead)
	assert.True(t, self.Permits(Target{StudentID: "s1"}))
	assert.False(t, self.Permits(Target{StudentID: "s2"}))

	assert.True(t, pol.Authorize(p, ResourceLeaveRequest, OpUpdateStatus).Permits(Target{StudentID: "s1"}))
}

func TestStudentWithoutRoomCannotReadRooms(t *testing.T) {
	d := Policy{}.Authorize(student("s1", "", ""), ResourceRoom, OpRead)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNoRoom, d.Reason)
}

func TestStudentWithoutRecordIsDenied(t *testing.T) {
	p := &models.Principal{UserID: "u1", Role: models.RoleStudent}
	d := Policy{}.Authorize(p, ResourceComplaint, OpList)
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Err(), appErrors.ErrForbidden)
}

func TestAnnouncementFeeds(t *testing.T) {
	var pol Policy
	global := Target{}
	blockA := Target{BlockID: "block-a"}
	blockB := Target{BlockID: "block-b"}

	housed := pol.Authorize(student("s1", "room-1", "block-a"), ResourceAnnouncement, OpList)
	assert.True(t, housed.Permits(global))
	assert.True(t, housed.Permits(blockA))
	assert.False(t, housed.Permits(blockB))

	unhoused := pol.Authorize(student("s2", "", ""), ResourceAnnouncement, OpList)
	assert.True(t, unhoused.Permits(global))
	assert.False(t, unhoused.Permits(blockA))

	w := pol.Authorize(warden("block-b"), ResourceAnnouncement, OpList)
	assert.True(t, w.Permits(global))
	assert.True(t, w.Permits(blockB))
	assert.False(t, w.Permits(blockA))

	create := pol.Authorize(warden("block-b"), ResourceAnnouncement, OpCreate)
	assert.Equal(t, "block-b", create.Filter.BlockID)
	assert.False(t, create.Permits(global))
}

func TestWardenWritesScopedToBlock(t *testing.T) {
	var pol Policy
	w := warden("block-a")

	create := pol.Authorize(w, ResourceRoom, OpCreate)
	assert.True(t, create.Permits(Target{BlockID: "block-a"}))
	assert.False(t, create.Permits(Target{BlockID: "block-b"}))

	assign := pol.Authorize(w, ResourceRoom, OpAssign)
	assert.False(t, assign.Permits(Target{RoomID: "r9", BlockID: "block-b"}))

	assert.False(t, pol.Authorize(w, ResourcePayment, OpList).Allowed)
	assert.False(t, pol.Authorize(w, ResourceBlock, OpCreate).Allowed)
	assert.False(t, pol.Authorize(w, ResourceAnalytics, OpRead).Allowed)
}

func TestOwnerCreateRequiresStudentScope(t *testing.T) {
	var pol Policy
	assert.False(t, pol.Authorize(admin(), ResourceComplaint, OpCreate).Allowed)
	assert.False(t, pol.Authorize(warden("block-a"), ResourceLeaveRequest, OpCreate).Allowed)
	assert.True(t, pol.Authorize(student("s1", "", ""), ResourceComplaint, OpCreate).Allowed)
	assert.True(t, pol.Authorize(admin(), ResourcePayment, OpCreate).Allowed)
}

func TestUnassignedWardenPolicy(t *testing.T) {
	p := warden("")

	strict := Policy{}
	d := strict.Authorize(p, ResourceStudent, OpList)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNoBlock, d.Reason)

	open := Policy{AllowUnassignedWardenReads: true}
	read := open.Authorize(p, ResourceComplaint, OpList)
	require.True(t, read.Allowed)
	assert.True(t, read.Filter.Unrestricted())
	assert.False(t, open.Authorize(p, ResourceComplaint, OpUpdateStatus).Allowed)
	assert.False(t, open.Authorize(p, ResourceRoom, OpAssign).Allowed)
	assert.False(t, open.Authorize(p, ResourcePayment, OpList).Allowed)
}

type recorder struct {
	allowed, denied int
}

func (r *recorder) ObserveDecision(resource Resource, op Operation, allowed bool) {
	if allowed {
		r.allowed++
		return
	}
	r.denied++
}

func TestAuthorizerReportsAndChecksTargets(t *testing.T) {
	rec := &recorder{}
	a := NewAuthorizer(Policy{}, rec)

	err := a.Check(warden("block-b"), ResourceComplaint, OpUpdateStatus, Target{StudentID: "s1", BlockID: "block-a"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Contains(t, err.Error(), ReasonOutOfScope)

	assert.NoError(t, a.Check(warden("block-a"), ResourceComplaint, OpUpdateStatus, Target{StudentID: "s1", BlockID: "block-a"}))
	assert.ErrorIs(t, a.Check(nil, ResourceComplaint, OpList, Target{}), appErrors.ErrUnauthenticated)

	assert.Equal(t, 2, rec.allowed)
	assert.Equal(t, 1, rec.denied)
}
