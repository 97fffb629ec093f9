package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-api/internal/dto"
	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/internal/repository"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

func newComplaintFixture() (*world, *ComplaintService, *recordingEvents) {
	w := newWorld()
	w.addBlock("A")
	w.addBlock("B")
	w.addRoom("a1", "A", 4, 2)
	w.addRoom("b1", "B", 4, 1)
	w.addStudent("alice", "a1")
	w.addStudent("amir", "a1")
	w.addStudent("bob", "b1")
	events := &recordingEvents{}
	return w, NewComplaintService(fakeComplaints{world: w}, testSupport(w, events, nil)), events
}

func TestComplaintLifecycle(t *testing.T) {
	w, svc, events := newComplaintFixture()
	ctx := context.Background()
	alice := studentPrincipal(w, "alice")
	wardenA := wardenPrincipal("A")

	created, err := svc.Create(ctx, alice, dto.CreateComplaintRequest{Title: "Leaking tap", Description: "Bathroom tap leaks"}, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintOpen, created.Status)
	assert.Equal(t, "alice", created.StudentID)

	_, err = svc.UpdateStatus(ctx, alice, dto.StatusUpdateRequest{ID: created.ID, Status: "RESOLVED"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.UpdateStatus(ctx, wardenPrincipal("B"), dto.StatusUpdateRequest{ID: created.ID, Status: "IN_PROGRESS"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	updated, err := svc.UpdateStatus(ctx, wardenA, dto.StatusUpdateRequest{ID: created.ID, Status: "IN_PROGRESS"}, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintInProgress, updated.Status)

	_, err = svc.UpdateStatus(ctx, wardenA, dto.StatusUpdateRequest{ID: created.ID, Status: "OPEN"}, RequestMeta{})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "IN_PROGRESS -> OPEN")

	updated, err = svc.UpdateStatus(ctx, adminPrincipal(), dto.StatusUpdateRequest{ID: created.ID, Status: "resolved"}, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintResolved, updated.Status)

	_, err = svc.UpdateStatus(ctx, wardenA, dto.StatusUpdateRequest{ID: created.ID, Status: "IN_PROGRESS"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, wardenA, dto.StatusUpdateRequest{ID: created.ID, Status: "CLOSED"}, RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, models.ComplaintClosed, w.complaints[created.ID].Status)
	assert.Equal(t, []string{
		models.AuditActionCreate,
		models.AuditActionStatusChange,
		models.AuditActionStatusChange,
		models.AuditActionStatusChange,
	}, w.auditActions())
	assert.Equal(t, []string{
		EventComplaintCreated,
		EventComplaintStatusChanged,
		EventComplaintStatusChanged,
		EventComplaintStatusChanged,
	}, events.types())
}

func TestComplaintCreateOwnership(t *testing.T) {
	w, svc, _ := newComplaintFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, studentPrincipal(w, "alice"), dto.CreateComplaintRequest{Title: "t", Description: "d", StudentID: "bob"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Create(ctx, wardenPrincipal("A"), dto.CreateComplaintRequest{Title: "t", Description: "d", StudentID: "alice"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Create(ctx, adminPrincipal(), dto.CreateComplaintRequest{Title: "t", Description: "d", StudentID: "alice"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	orphan := &models.Principal{UserID: "u-x", Role: models.RoleStudent}
	_, err = svc.Create(ctx, orphan, dto.CreateComplaintRequest{Title: "t", Description: "d"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Create(ctx, nil, dto.CreateComplaintRequest{Title: "t", Description: "d"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)

	assert.Empty(t, w.complaints)
}

func TestComplaintVisibility(t *testing.T) {
	w, svc, _ := newComplaintFixture()
	ctx := context.Background()
	for _, id := range []string{"alice", "amir", "bob"} {
		_, err := svc.Create(ctx, studentPrincipal(w, id), dto.CreateComplaintRequest{Title: "t-" + id, Description: "d"}, RequestMeta{})
		require.NoError(t, err)
	}

	own, _, err := svc.List(ctx, studentPrincipal(w, "alice"), dto.ComplaintListQuery{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "alice", own[0].StudentID)

	blockA, pg, err := svc.List(ctx, wardenPrincipal("A"), dto.ComplaintListQuery{})
	require.NoError(t, err)
	assert.Len(t, blockA, 2)
	assert.Equal(t, 2, pg.TotalCount)

	all, _, err := svc.List(ctx, adminPrincipal(), dto.ComplaintListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, _, err = svc.List(ctx, wardenPrincipal(""), dto.ComplaintListQuery{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	var bobs string
	for _, c := range all {
		if c.StudentID == "bob" {
			bobs = c.ID
		}
	}
	_, err = svc.Get(ctx, studentPrincipal(w, "alice"), bobs)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	_, err = svc.Get(ctx, wardenPrincipal("A"), bobs)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	_, err = svc.Get(ctx, wardenPrincipal("B"), bobs)
	assert.NoError(t, err)

	_, _, err = svc.List(ctx, adminPrincipal(), dto.ComplaintListQuery{Status: "DONE"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestComplaintConcurrentChangeReported(t *testing.T) {
	w, _, _ := newComplaintFixture()
	alice := studentPrincipal(w, "alice")
	svc := NewComplaintService(fakeComplaints{world: w}, testSupport(w, nil, nil))
	created, err := svc.Create(context.Background(), alice, dto.CreateComplaintRequest{Title: "t", Description: "d"}, RequestMeta{})
	require.NoError(t, err)

	racing := NewComplaintService(fakeComplaints{world: w, failUpdate: repository.ErrConditionFailed}, testSupport(w, nil, nil))
	_, err = racing.UpdateStatus(context.Background(), wardenPrincipal("A"), dto.StatusUpdateRequest{ID: created.ID, Status: "IN_PROGRESS"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)
	assert.Equal(t, models.ComplaintOpen, w.complaints[created.ID].Status)
}

func TestComplaintUnknownStatus(t *testing.T) {
	w, svc, _ := newComplaintFixture()
	created, err := svc.Create(context.Background(), studentPrincipal(w, "alice"), dto.CreateComplaintRequest{Title: "t", Description: "d"}, RequestMeta{})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), wardenPrincipal("A"), dto.StatusUpdateRequest{ID: created.ID, Status: "ARCHIVED"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.UpdateStatus(context.Background(), wardenPrincipal("A"), dto.StatusUpdateRequest{ID: "missing", Status: "CLOSED"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.False(t, errors.Is(err, appErrors.ErrForbidden))
}
