package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/dto"
	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/internal/repository"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, f access.Filter, params models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	CreateWithUser(ctx context.Context, user *models.User, student *models.Student, roomID string) error
}

type studentRoomRepository interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Assign(ctx context.Context, roomID, studentID string) error
}

// StudentService manages resident records and room assignment.
type StudentService struct {
	base
	repo  studentRepository
	rooms studentRoomRepository
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, rooms studentRoomRepository, support Support) *StudentService {
	return &StudentService{base: newBase(support), repo: repo, rooms: rooms}
}

// List returns students inside p's scope. Wardens also see students without a room.
func (s *StudentService) List(ctx context.Context, p *models.Principal, q dto.StudentListQuery) ([]models.Student, *models.Pagination, error) {
	d, err := s.authorize(p, access.ResourceStudent, access.OpList)
	if err != nil {
		return nil, nil, err
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, nil, validationError(err, "invalid student query")
	}
	students, total, err := s.repo.List(ctx, d.Filter, models.StudentFilter{
		RoomID:         q.RoomID,
		UnassignedOnly: q.Unassigned,
		Search:         strings.TrimSpace(q.Search),
		Page:           q.Page,
		Limit:          q.Limit,
	})
	if err != nil {
		return nil, nil, storeError(err, "failed to list students")
	}
	for i := range students {
		students[i] = access.ShapeStudent(p, students[i])
	}
	return students, pagination(q.Page, q.Limit, total), nil
}

// Get returns one student record.
func (s *StudentService) Get(ctx context.Context, p *models.Principal, id string) (*models.Student, error) {
	d, err := s.authorize(p, access.ResourceStudent, access.OpRead)
	if err != nil {
		return nil, err
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student")
	}
	if !d.Permits(access.TargetOf(student.ID, student.RoomID, student.BlockID)) {
		return nil, outOfScope()
	}
	shaped := access.ShapeStudent(p, *student)
	return &shaped, nil
}

// Me returns the caller's own student record.
func (s *StudentService) Me(ctx context.Context, p *models.Principal) (*models.Student, error) {
	if !p.HasStudentScope() {
		if _, err := s.authorize(p, access.ResourceStudent, access.OpRead); err != nil {
			return nil, err
		}
		return nil, appErrors.Denied(access.ReasonNoStudent)
	}
	return s.Get(ctx, p, p.StudentID)
}

// Create onboards a resident with a temporary password, optionally placing them in a room.
func (s *StudentService) Create(ctx context.Context, p *models.Principal, req dto.CreateStudentRequest, meta RequestMeta) (*dto.CreateStudentResponse, error) {
	if _, err := s.authorize(p, access.ResourceStudent, access.OpCreate); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}

	roomID := strings.TrimSpace(req.RoomID)
	var room *models.Room
	if roomID != "" {
		var err error
		if room, err = s.assignableRoom(ctx, p, roomID); err != nil {
			return nil, err
		}
		if room.Occupied >= room.Capacity {
			return nil, appErrors.ErrCapacityExceeded
		}
	}

	password, err := temporaryPassword()
	if err != nil {
		return nil, appErrors.Internal(err, "failed to generate password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         models.RoleStudent,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	student := &models.Student{
		ID:            uuid.NewString(),
		RollNo:        strings.TrimSpace(req.RollNo),
		ParentContact: strings.TrimSpace(req.ParentContact),
		CreatedAt:     now,
	}
	if err := s.repo.CreateWithUser(ctx, user, student, roomID); err != nil {
		return nil, assignError(err, "failed to create student")
	}

	student.FullName = user.FullName
	student.Email = user.Email
	if room != nil {
		student.RoomNumber = &room.RoomNumber
		student.BlockID = &room.BlockID
	}

	s.audit.record(ctx, p, meta, models.AuditActionCreate, string(access.ResourceStudent), student.ID, nil, map[string]interface{}{
		"userId": user.ID,
		"rollNo": student.RollNo,
		"roomId": deref(student.RoomID),
	})
	if room != nil {
		publish(ctx, s.events, EventRoomAssigned, map[string]string{"studentId": student.ID, "roomId": room.ID, "blockId": room.BlockID})
	}
	s.invalidateStats(ctx)

	return &dto.CreateStudentResponse{Student: *student, TemporaryPassword: password}, nil
}

// AssignRoom places an unassigned student into a room with a free bed.
func (s *StudentService) AssignRoom(ctx context.Context, p *models.Principal, req dto.AssignRoomRequest, meta RequestMeta) (*models.Student, error) {
	d, err := s.authorize(p, access.ResourceStudent, access.OpAssign)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid assignment payload")
	}

	student, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, lookupError(err, "student")
	}
	if !d.Permits(access.TargetOf(student.ID, student.RoomID, student.BlockID)) {
		return nil, outOfScope()
	}

	room, err := s.assignableRoom(ctx, p, req.RoomID)
	if err != nil {
		return nil, err
	}
	if err := access.RoomAssignment(*room, *student); err != nil {
		return nil, err
	}

	if err := s.rooms.Assign(ctx, room.ID, student.ID); err != nil {
		return nil, assignError(err, "failed to assign room")
	}

	student.RoomID = &room.ID
	student.RoomNumber = &room.RoomNumber
	student.BlockID = &room.BlockID

	s.audit.record(ctx, p, meta, models.AuditActionRoomAssign, string(access.ResourceStudent), student.ID, nil, map[string]string{"roomId": room.ID})
	publish(ctx, s.events, EventRoomAssigned, map[string]string{"studentId": student.ID, "roomId": room.ID, "blockId": room.BlockID})
	s.invalidateStats(ctx)

	s.logger.Info("room assigned", zap.String("student_id", student.ID), zap.String("room_id", room.ID))
	shaped := access.ShapeStudent(p, *student)
	return &shaped, nil
}

// assignableRoom loads roomID and checks that p may place students into it.
func (s *StudentService) assignableRoom(ctx context.Context, p *models.Principal, roomID string) (*models.Room, error) {
	d, err := s.authorize(p, access.ResourceRoom, access.OpAssign)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("room")
		}
		return nil, appErrors.Internal(err, "failed to load room")
	}
	if !d.Permits(access.Target{RoomID: room.ID, BlockID: room.BlockID}) {
		return nil, outOfScope()
	}
	return room, nil
}

func assignError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrRoomFull):
		return appErrors.ErrCapacityExceeded
	case errors.Is(err, repository.ErrConditionFailed):
		return appErrors.Clone(appErrors.ErrInvalidTransition, "student already has a room")
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrAlreadyExists, "email or roll number already registered")
	}
	return storeError(err, message)
}

func temporaryPassword() (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
