package service

import (
	"context"
	"errors"
	"strings"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/dto"
	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/internal/repository"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

type leaveRepository interface {
	List(ctx context.Context, f access.Filter, params models.LeaveFilter) ([]models.LeaveRequest, int, error)
	FindByID(ctx context.Context, id string) (*models.LeaveRequest, error)
	Create(ctx context.Context, leave *models.LeaveRequest) error
	UpdateStatus(ctx context.Context, id string, from, to models.LeaveStatus) error
}

// LeaveService handles leave requests.
type LeaveService struct {
	base
	repo leaveRepository
}

// NewLeaveService constructs a LeaveService.
func NewLeaveService(repo leaveRepository, support Support) *LeaveService {
	return &LeaveService{base: newBase(support), repo: repo}
}

// List returns leave requests inside p's scope.
func (s *LeaveService) List(ctx context.Context, p *models.Principal, q dto.LeaveListQuery) ([]models.LeaveRequest, *models.Pagination, error) {
	d, err := s.authorize(p, access.ResourceLeaveRequest, access.OpList)
	if err != nil {
		return nil, nil, err
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, nil, validationError(err, "invalid leave query")
	}
	items, total, err := s.repo.List(ctx, d.Filter, models.LeaveFilter{
		Status: models.LeaveStatus(q.Status),
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, nil, storeError(err, "failed to list leave requests")
	}
	return items, pagination(q.Page, q.Limit, total), nil
}

// Get returns one leave request.
func (s *LeaveService) Get(ctx context.Context, p *models.Principal, id string) (*models.LeaveRequest, error) {
	d, err := s.authorize(p, access.ResourceLeaveRequest, access.OpRead)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, d, id)
}

// Create files a PENDING leave request for the calling student.
func (s *LeaveService) Create(ctx context.Context, p *models.Principal, req dto.CreateLeaveRequest, meta RequestMeta) (*models.LeaveRequest, error) {
	if _, err := s.authorize(p, access.ResourceLeaveRequest, access.OpCreate); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid leave payload")
	}
	studentID, err := access.StampStudent(p, req.StudentID)
	if err != nil {
		return nil, err
	}

	from, err := parseDate(req.FromDate)
	if err != nil {
		return nil, validationError(err, "invalid fromDate")
	}
	to, err := parseDate(req.ToDate)
	if err != nil {
		return nil, validationError(err, "invalid toDate")
	}
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "toDate must not be before fromDate")
	}

	leave := &models.LeaveRequest{
		FromDate:  from,
		ToDate:    to,
		Reason:    strings.TrimSpace(req.Reason),
		StudentID: studentID,
		BlockID:   strPtr(p.BlockID),
	}
	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, storeError(err, "failed to create leave request")
	}

	s.audit.record(ctx, p, meta, models.AuditActionCreate, string(access.ResourceLeaveRequest), leave.ID, nil, leave)
	publish(ctx, s.events, EventLeaveRequested, map[string]string{"leaveId": leave.ID, "studentId": studentID, "blockId": p.BlockID})
	s.invalidateStats(ctx)
	return leave, nil
}

// UpdateStatus approves, rejects or cancels a PENDING request.
func (s *LeaveService) UpdateStatus(ctx context.Context, p *models.Principal, req dto.StatusUpdateRequest, meta RequestMeta) (*models.LeaveRequest, error) {
	d, err := s.authorize(p, access.ResourceLeaveRequest, access.OpUpdateStatus)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid status payload")
	}

	leave, err := s.load(ctx, d, req.ID)
	if err != nil {
		return nil, err
	}
	from, to := leave.Status, models.LeaveStatus(strings.ToUpper(req.Status))
	if err := access.LeaveTransition(p, from, to); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, leave.ID, from, to); err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "leave request already decided")
		}
		return nil, storeError(err, "failed to update leave request")
	}
	leave.Status = to

	s.audit.record(ctx, p, meta, models.AuditActionStatusChange, string(access.ResourceLeaveRequest), leave.ID,
		map[string]string{"status": string(from)}, map[string]string{"status": string(to)})
	publish(ctx, s.events, EventLeaveDecided, map[string]string{
		"leaveId":   leave.ID,
		"studentId": leave.StudentID,
		"status":    string(to),
	})
	s.invalidateStats(ctx)
	return leave, nil
}

func (s *LeaveService) load(ctx context.Context, d access.Decision, id string) (*models.LeaveRequest, error) {
	leave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "leave request")
	}
	if !d.Permits(access.TargetOf(leave.StudentID, nil, leave.BlockID)) {
		return nil, outOfScope()
	}
	return leave, nil
}
