package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-api/internal/dto"
	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

func newStudentFixture() (*world, *StudentService, *recordingEvents, *recordingCache) {
	w := newWorld()
	w.addBlock("A")
	w.addBlock("B")
	w.addRoom("a1", "A", 2, 1)
	w.addRoom("a2", "A", 3, 3)
	w.addRoom("b1", "B", 4, 0)
	events := &recordingEvents{}
	cache := &recordingCache{}
	svc := NewStudentService(fakeStudents{w}, fakeRooms{w}, testSupport(w, events, cache))
	return w, svc, events, cache
}

func TestAssignRoomConcurrentSingleFreeBed(t *testing.T) {
	w, svc, _, _ := newStudentFixture()
	const n = 12
	for i := 0; i < n; i++ {
		w.addStudent(fmt.Sprintf("s%d", i), "")
	}
	warden := wardenPrincipal("A")

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AssignRoom(context.Background(), warden, dto.AssignRoomRequest{ID: fmt.Sprintf("s%d", i), RoomID: "a1"}, RequestMeta{})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var ok, full int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, appErrors.ErrCapacityExceeded):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, full)
	assert.Equal(t, 2, w.rooms["a1"].Occupied)
}

func TestAssignRoomFullRoom(t *testing.T) {
	w, svc, events, _ := newStudentFixture()
	w.addStudent("s1", "")

	_, err := svc.AssignRoom(context.Background(), adminPrincipal(), dto.AssignRoomRequest{ID: "s1", RoomID: "a2"}, RequestMeta{})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrCapacityExceeded)
	assert.Equal(t, 0, w.assignCalls)
	assert.Nil(t, w.students["s1"].RoomID)
	assert.Equal(t, 3, w.rooms["a2"].Occupied)
	assert.Empty(t, events.types())
}

func TestAssignRoomRecordsAuditAndEvent(t *testing.T) {
	w, svc, events, cache := newStudentFixture()
	w.addStudent("s1", "")

	st, err := svc.AssignRoom(context.Background(), wardenPrincipal("A"), dto.AssignRoomRequest{ID: "s1", RoomID: "a1"}, RequestMeta{IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "a1", *st.RoomID)
	assert.Equal(t, []string{models.AuditActionRoomAssign}, w.auditActions())
	assert.Equal(t, []string{EventRoomAssigned}, events.types())
	assert.Equal(t, []string{statsCachePattern}, cache.patterns)
}

func TestAssignRoomAlreadyHoused(t *testing.T) {
	w, svc, _, _ := newStudentFixture()
	w.addStudent("s1", "b1")

	_, err := svc.AssignRoom(context.Background(), adminPrincipal(), dto.AssignRoomRequest{ID: "s1", RoomID: "a1"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)
}

func TestAssignRoomOutsideWardenBlock(t *testing.T) {
	w, svc, _, _ := newStudentFixture()
	w.addStudent("s1", "")
	w.addStudent("s2", "b1")

	_, err := svc.AssignRoom(context.Background(), wardenPrincipal("A"), dto.AssignRoomRequest{ID: "s1", RoomID: "b1"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.AssignRoom(context.Background(), wardenPrincipal("A"), dto.AssignRoomRequest{ID: "s2", RoomID: "a1"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Equal(t, 0, w.assignCalls)
}

func TestAssignRoomStudentDenied(t *testing.T) {
	w, svc, _, _ := newStudentFixture()
	w.addStudent("s1", "")
	w.addStudent("s2", "a1")

	_, err := svc.AssignRoom(context.Background(), studentPrincipal(w, "s2"), dto.AssignRoomRequest{ID: "s1", RoomID: "a1"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestStudentListScopedToWardenBlock(t *testing.T) {
	w, svc, _, _ := newStudentFixture()
	w.addStudent("inA", "a1")
	w.addStudent("inB", "b1")
	w.addStudent("none", "")

	items, pg, err := svc.List(context.Background(), wardenPrincipal("A"), dto.StudentListQuery{})
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, st := range items {
		ids = append(ids, st.ID)
	}
	assert.ElementsMatch(t, []string{"inA", "none"}, ids)
	assert.Equal(t, 2, pg.TotalCount)
	assert.Equal(t, 20, pg.Limit)
}

func TestStudentGetHidesOthersAndKeepsOwnContact(t *testing.T) {
	w, svc, _, _ := newStudentFixture()
	w.addStudent("s1", "a1")
	w.addStudent("s2", "a1")
	me := studentPrincipal(w, "s1")

	own, err := svc.Me(context.Background(), me)
	require.NoError(t, err)
	assert.Equal(t, "555-s1", own.ParentContact)

	_, err = svc.Get(context.Background(), me, "s2")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Get(context.Background(), me, "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCreateStudentWithRoom(t *testing.T) {
	w, svc, events, _ := newStudentFixture()

	res, err := svc.Create(context.Background(), wardenPrincipal("A"), dto.CreateStudentRequest{
		Email:    "New@Hostel.test",
		FullName: "New Resident",
		RollNo:   "R-100",
		RoomID:   "a1",
	}, RequestMeta{})
	require.NoError(t, err)
	assert.NotEmpty(t, res.TemporaryPassword)
	assert.Equal(t, "new@hostel.test", res.Student.Email)
	require.NotNil(t, res.Student.RoomID)
	assert.Equal(t, "a1", *res.Student.RoomID)
	assert.Equal(t, 2, w.rooms["a1"].Occupied)
	assert.Equal(t, []string{EventRoomAssigned}, events.types())

	_, err = svc.Create(context.Background(), wardenPrincipal("A"), dto.CreateStudentRequest{
		Email: "other@hostel.test", FullName: "Other", RollNo: "R-101", RoomID: "a1",
	}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrCapacityExceeded)

	_, err = svc.Create(context.Background(), wardenPrincipal("A"), dto.CreateStudentRequest{
		Email: "dup@hostel.test", FullName: "Dup", RollNo: "R-100",
	}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrAlreadyExists)
}

func TestCreateStudentRoomOutsideBlock(t *testing.T) {
	_, svc, _, _ := newStudentFixture()

	_, err := svc.Create(context.Background(), wardenPrincipal("A"), dto.CreateStudentRequest{
		Email: "x@hostel.test", FullName: "X", RollNo: "R-1", RoomID: "b1",
	}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestCreateStudentValidation(t *testing.T) {
	_, svc, _, _ := newStudentFixture()

	_, err := svc.Create(context.Background(), adminPrincipal(), dto.CreateStudentRequest{Email: "bad"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
