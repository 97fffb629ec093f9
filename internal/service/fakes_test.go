package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/internal/repository"
)

// world is an in-memory hostel shared by the fake repositories.
type world struct {
	mu          sync.Mutex
	blocks      map[string]*models.Block
	rooms       map[string]*models.Room
	students    map[string]*models.Student
	complaints  map[string]*models.Complaint
	leaves      map[string]*models.LeaveRequest
	attendance  []models.Attendance
	payments    []models.Payment
	notices     []models.Announcement
	audit       []*models.AuditLog
	assignCalls int
}

func newWorld() *world {
	return &world{
		blocks:     map[string]*models.Block{},
		rooms:      map[string]*models.Room{},
		students:   map[string]*models.Student{},
		complaints: map[string]*models.Complaint{},
		leaves:     map[string]*models.LeaveRequest{},
	}
}

func (w *world) addBlock(id string) {
	w.blocks[id] = &models.Block{ID: id, Name: "Block " + id}
}

func (w *world) addRoom(id, blockID string, capacity, occupied int) *models.Room {
	room := &models.Room{ID: id, RoomNumber: "R" + id, BlockID: blockID, Capacity: capacity, Occupied: occupied}
	w.rooms[id] = room
	return room
}

func (w *world) addStudent(id, roomID string) *models.Student {
	st := &models.Student{ID: id, UserID: "u-" + id, RollNo: "ROLL-" + id, FullName: "Student " + id, ParentContact: "555-" + id}
	if roomID != "" {
		room := w.rooms[roomID]
		st.RoomID = &room.ID
		st.RoomNumber = &room.RoomNumber
		st.BlockID = &room.BlockID
	}
	w.students[id] = st
	return st
}

func (w *world) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.audit = append(w.audit, log)
	return nil
}

func (w *world) auditActions() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	actions := make([]string, 0, len(w.audit))
	for _, entry := range w.audit {
		actions = append(actions, entry.Action)
	}
	return actions
}

func (w *world) studentTarget(studentID string) access.Target {
	st, ok := w.students[studentID]
	if !ok {
		return access.Target{StudentID: studentID}
	}
	return access.TargetOf(st.ID, st.RoomID, st.BlockID)
}

func page[T any](items []T, p, limit int) []T {
	p, limit = repository.NormalizePage(p, limit)
	start := (p - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeBlocks struct{ *world }

func (f fakeBlocks) List(ctx context.Context, filter access.Filter) ([]models.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Block
	for _, b := range f.blocks {
		if filter.Permits(access.Target{BlockID: b.ID}) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f fakeBlocks) FindByID(ctx context.Context, id string) (*models.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blocks[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (f fakeBlocks) Create(ctx context.Context, block *models.Block) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	block.ID = uuid.NewString()
	f.blocks[block.ID] = block
	return nil
}

type fakeRooms struct{ *world }

func (f fakeRooms) List(ctx context.Context, filter access.Filter, params models.RoomFilter) ([]models.Room, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Room
	for _, r := range f.rooms {
		if !filter.Permits(access.Target{RoomID: r.ID, BlockID: r.BlockID}) {
			continue
		}
		if params.BlockID != "" && r.BlockID != params.BlockID {
			continue
		}
		if params.AvailableOnly && r.Available() == 0 {
			continue
		}
		out = append(out, *r)
	}
	return page(out, params.Page, params.Limit), len(out), nil
}

func (f fakeRooms) FindByID(ctx context.Context, id string) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (f fakeRooms) Residents(ctx context.Context, roomID string) ([]models.Resident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Resident
	for _, st := range f.students {
		if st.RoomID != nil && *st.RoomID == roomID {
			out = append(out, models.Resident{StudentID: st.ID, FullName: st.FullName, RollNo: st.RollNo})
		}
	}
	return out, nil
}

func (f fakeRooms) Create(ctx context.Context, room *models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rooms {
		if r.BlockID == room.BlockID && r.RoomNumber == room.RoomNumber {
			return repository.ErrDuplicate
		}
	}
	room.ID = uuid.NewString()
	f.rooms[room.ID] = room
	return nil
}

// Assign mirrors the conditional writes of the SQL repository.
func (f fakeRooms) Assign(ctx context.Context, roomID, studentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignCalls++
	return f.assignLocked(roomID, studentID)
}

func (w *world) assignLocked(roomID, studentID string) error {
	room, ok := w.rooms[roomID]
	if !ok || room.Occupied >= room.Capacity {
		return repository.ErrRoomFull
	}
	st, ok := w.students[studentID]
	if !ok || st.RoomID != nil {
		return repository.ErrConditionFailed
	}
	room.Occupied++
	st.RoomID = &room.ID
	st.BlockID = &room.BlockID
	return nil
}

type fakeStudents struct{ *world }

func (f fakeStudents) List(ctx context.Context, filter access.Filter, params models.StudentFilter) ([]models.Student, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Student
	for _, st := range f.students {
		if !filter.Permits(access.TargetOf(st.ID, st.RoomID, st.BlockID)) {
			continue
		}
		if params.UnassignedOnly && st.RoomID != nil {
			continue
		}
		out = append(out, *st)
	}
	return page(out, params.Page, params.Limit), len(out), nil
}

func (f fakeStudents) FindByID(ctx context.Context, id string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *st
	return &cp, nil
}

func (f fakeStudents) FindByUserID(ctx context.Context, userID string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, st := range f.students {
		if st.UserID == userID {
			cp := *st
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f fakeStudents) CreateWithUser(ctx context.Context, user *models.User, student *models.Student, roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, st := range f.students {
		if st.RollNo == student.RollNo {
			return repository.ErrDuplicate
		}
	}
	student.UserID = user.ID
	f.students[student.ID] = student
	if roomID == "" {
		return nil
	}
	if err := f.assignLocked(roomID, student.ID); err != nil {
		delete(f.students, student.ID)
		return err
	}
	return nil
}

type fakeComplaints struct {
	*world
	failUpdate error
}

func (f fakeComplaints) List(ctx context.Context, filter access.Filter, params models.ComplaintFilter) ([]models.Complaint, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Complaint
	for _, c := range f.complaints {
		if filter.Permits(f.studentTarget(c.StudentID)) && (params.Status == "" || c.Status == params.Status) {
			out = append(out, *c)
		}
	}
	return page(out, params.Page, params.Limit), len(out), nil
}

func (f fakeComplaints) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	if st, ok := f.students[c.StudentID]; ok {
		cp.BlockID = st.BlockID
	}
	return &cp, nil
}

func (f fakeComplaints) Create(ctx context.Context, c *models.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = uuid.NewString()
	c.Status = models.ComplaintOpen
	c.CreatedAt = time.Now().UTC()
	cp := *c
	f.complaints[c.ID] = &cp
	return nil
}

func (f fakeComplaints) UpdateStatus(ctx context.Context, id string, from, to models.ComplaintStatus) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[id]
	if !ok || c.Status != from {
		return repository.ErrConditionFailed
	}
	c.Status = to
	return nil
}

type fakeLeaves struct{ *world }

func (f fakeLeaves) List(ctx context.Context, filter access.Filter, params models.LeaveFilter) ([]models.LeaveRequest, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.LeaveRequest
	for _, l := range f.leaves {
		if filter.Permits(f.studentTarget(l.StudentID)) && (params.Status == "" || l.Status == params.Status) {
			out = append(out, *l)
		}
	}
	return page(out, params.Page, params.Limit), len(out), nil
}

func (f fakeLeaves) FindByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leaves[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *l
	if st, ok := f.students[l.StudentID]; ok {
		cp.BlockID = st.BlockID
	}
	return &cp, nil
}

func (f fakeLeaves) Create(ctx context.Context, l *models.LeaveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l.ID = uuid.NewString()
	l.Status = models.LeavePending
	cp := *l
	f.leaves[l.ID] = &cp
	return nil
}

func (f fakeLeaves) UpdateStatus(ctx context.Context, id string, from, to models.LeaveStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leaves[id]
	if !ok || l.Status != from {
		return repository.ErrConditionFailed
	}
	l.Status = to
	return nil
}

type fakeAnnouncements struct{ *world }

func (f fakeAnnouncements) List(ctx context.Context, filter access.Filter, params models.AnnouncementFilter) ([]models.Announcement, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Announcement
	for _, a := range f.notices {
		if filter.Permits(access.TargetOf("", nil, a.BlockID)) {
			out = append(out, a)
		}
	}
	return page(out, params.Page, params.Limit), len(out), nil
}

func (f fakeAnnouncements) Create(ctx context.Context, a *models.Announcement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.NewString()
	f.notices = append(f.notices, *a)
	return nil
}

type fakeAttendance struct{ *world }

func (f fakeAttendance) List(ctx context.Context, filter access.Filter, params models.AttendanceFilter) ([]models.Attendance, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Attendance
	for _, a := range f.attendance {
		if !filter.Permits(f.studentTarget(a.StudentID)) {
			continue
		}
		if a.Date.Before(params.From) || a.Date.After(params.To) {
			continue
		}
		out = append(out, a)
	}
	return page(out, params.Page, params.Limit), len(out), nil
}

func (f fakeAttendance) CreateBatch(ctx context.Context, records []models.Attendance) ([]models.Attendance, []string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var created []models.Attendance
	var skipped []string
	for _, rec := range records {
		dup := false
		for _, existing := range f.attendance {
			if existing.StudentID == rec.StudentID && existing.Date.Equal(rec.Date) {
				dup = true
				break
			}
		}
		if dup {
			skipped = append(skipped, rec.StudentID)
			continue
		}
		rec.ID = uuid.NewString()
		f.attendance = append(f.attendance, rec)
		created = append(created, rec)
	}
	return created, skipped, nil
}

type fakePayments struct{ *world }

func (f fakePayments) List(ctx context.Context, filter access.Filter, params models.PaymentFilter) ([]models.Payment, int, error) {
	out, _ := f.ListForExport(ctx, filter, params)
	return page(out, params.Page, params.Limit), len(out), nil
}

func (f fakePayments) ListForExport(ctx context.Context, filter access.Filter, params models.PaymentFilter) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Payment
	for _, p := range f.payments {
		if filter.Permits(f.studentTarget(p.StudentID)) && (params.Status == "" || p.Status == params.Status) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f fakePayments) Create(ctx context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.NewString()
	f.payments = append(f.payments, *p)
	return nil
}

// recordingEvents captures published events.
type recordingEvents struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingEvents) Publish(ctx context.Context, eventType string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// recordingCache counts invalidations.
type recordingCache struct {
	mu       sync.Mutex
	patterns []string
}

func (r *recordingCache) Invalidate(ctx context.Context, pattern string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patterns = append(r.patterns, pattern)
	return nil
}

func testSupport(w *world, events *recordingEvents, cache *recordingCache) Support {
	s := Support{
		Authorizer: access.NewAuthorizer(access.Policy{}, nil),
		Audit:      w,
	}
	if events != nil {
		s.Events = events
	}
	if cache != nil {
		s.Cache = cache
	}
	return s
}

func studentPrincipal(w *world, studentID string) *models.Principal {
	st := w.students[studentID]
	p := &models.Principal{UserID: st.UserID, Role: models.RoleStudent, StudentID: st.ID}
	if st.RoomID != nil {
		p.RoomID = *st.RoomID
		p.BlockID = *st.BlockID
	}
	return p
}

func wardenPrincipal(blockID string) *models.Principal {
	return &models.Principal{UserID: "warden-" + blockID, Role: models.RoleWarden, BlockID: blockID}
}

func adminPrincipal() *models.Principal {
	return &models.Principal{UserID: "admin", Role: models.RoleAdmin}
}
