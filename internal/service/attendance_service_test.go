package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-api/internal/dto"
	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

func present(v bool) *bool { return &v }

func newAttendanceFixture() (*world, *AttendanceService) {
	w := newWorld()
	w.addBlock("A")
	w.addBlock("B")
	w.addRoom("a1", "A", 4, 2)
	w.addRoom("b1", "B", 4, 1)
	w.addStudent("alice", "a1")
	w.addStudent("amir", "a1")
	w.addStudent("bob", "b1")
	return w, NewAttendanceService(fakeAttendance{w}, fakeStudents{w}, testSupport(w, nil, nil))
}

func TestMarkAttendanceSkipsRepeats(t *testing.T) {
	w, svc := newAttendanceFixture()
	ctx := context.Background()
	warden := wardenPrincipal("A")

	res, err := svc.Mark(ctx, warden, dto.MarkAttendanceRequest{Date: "2026-02-10", Entries: []dto.AttendanceEntry{
		{StudentID: "alice", Present: present(true)},
		{StudentID: "alice", Present: present(false)},
		{StudentID: "amir", Present: present(false)},
	}}, RequestMeta{})
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)
	assert.Equal(t, []string{"alice"}, res.Skipped)

	res, err = svc.Mark(ctx, warden, dto.MarkAttendanceRequest{Date: "2026-02-10", Entries: []dto.AttendanceEntry{
		{StudentID: "amir", Present: present(true)},
	}}, RequestMeta{})
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Equal(t, []string{"amir"}, res.Skipped)
	assert.Len(t, w.attendance, 2)
	assert.Equal(t, []string{models.AuditActionAttendanceMark, models.AuditActionAttendanceMark}, w.auditActions())
}

func TestMarkAttendanceRejectsOutOfBlockBatch(t *testing.T) {
	w, svc := newAttendanceFixture()

	_, err := svc.Mark(context.Background(), wardenPrincipal("A"), dto.MarkAttendanceRequest{Entries: []dto.AttendanceEntry{
		{StudentID: "alice", Present: present(true)},
		{StudentID: "bob", Present: present(true)},
	}}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Empty(t, w.attendance)

	_, err = svc.Mark(context.Background(), wardenPrincipal("A"), dto.MarkAttendanceRequest{Entries: []dto.AttendanceEntry{
		{StudentID: "ghost", Present: present(true)},
	}}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Mark(context.Background(), studentPrincipal(w, "alice"), dto.MarkAttendanceRequest{Entries: []dto.AttendanceEntry{
		{StudentID: "alice", Present: present(true)},
	}}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestAttendanceListWindow(t *testing.T) {
	w, svc := newAttendanceFixture()
	ctx := context.Background()
	_, err := svc.Mark(ctx, adminPrincipal(), dto.MarkAttendanceRequest{Date: "2026-02-10", Entries: []dto.AttendanceEntry{
		{StudentID: "alice", Present: present(true)},
		{StudentID: "bob", Present: present(true)},
	}}, RequestMeta{})
	require.NoError(t, err)

	own, _, err := svc.List(ctx, studentPrincipal(w, "alice"), dto.AttendanceListQuery{From: "2026-02-01", To: "2026-02-28"})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "alice", own[0].StudentID)

	none, _, err := svc.List(ctx, adminPrincipal(), dto.AttendanceListQuery{})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, _, err = svc.List(ctx, adminPrincipal(), dto.AttendanceListQuery{From: "2026-02-10", To: "2026-02-01"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
