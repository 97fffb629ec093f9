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

type complaintRepository interface {
	List(ctx context.Context, f access.Filter, params models.ComplaintFilter) ([]models.Complaint, int, error)
	FindByID(ctx context.Context, id string) (*models.Complaint, error)
	Create(ctx context.Context, complaint *models.Complaint) error
	UpdateStatus(ctx context.Context, id string, from, to models.ComplaintStatus) error
}

// ComplaintService handles complaints raised by students and moderated by staff.
type ComplaintService struct {
	base
	repo complaintRepository
}

// NewComplaintService constructs a ComplaintService.
func NewComplaintService(repo complaintRepository, support Support) *ComplaintService {
	return &ComplaintService{base: newBase(support), repo: repo}
}

// List returns complaints inside p's scope.
func (s *ComplaintService) List(ctx context.Context, p *models.Principal, q dto.ComplaintListQuery) ([]models.Complaint, *models.Pagination, error) {
	d, err := s.authorize(p, access.ResourceComplaint, access.OpList)
	if err != nil {
		return nil, nil, err
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, nil, validationError(err, "invalid complaint query")
	}
	items, total, err := s.repo.List(ctx, d.Filter, models.ComplaintFilter{
		Status: models.ComplaintStatus(q.Status),
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, nil, storeError(err, "failed to list complaints")
	}
	return items, pagination(q.Page, q.Limit, total), nil
}

// Get returns one complaint.
func (s *ComplaintService) Get(ctx context.Context, p *models.Principal, id string) (*models.Complaint, error) {
	d, err := s.authorize(p, access.ResourceComplaint, access.OpRead)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, d, id)
}

// Create raises a complaint owned by the calling student.
func (s *ComplaintService) Create(ctx context.Context, p *models.Principal, req dto.CreateComplaintRequest, meta RequestMeta) (*models.Complaint, error) {
	if _, err := s.authorize(p, access.ResourceComplaint, access.OpCreate); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid complaint payload")
	}
	studentID, err := access.StampStudent(p, req.StudentID)
	if err != nil {
		return nil, err
	}

	complaint := &models.Complaint{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		StudentID:   studentID,
		BlockID:     strPtr(p.BlockID),
	}
	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, storeError(err, "failed to create complaint")
	}

	s.audit.record(ctx, p, meta, models.AuditActionCreate, string(access.ResourceComplaint), complaint.ID, nil, complaint)
	publish(ctx, s.events, EventComplaintCreated, map[string]string{"complaintId": complaint.ID, "studentId": studentID, "blockId": p.BlockID})
	s.invalidateStats(ctx)
	return complaint, nil
}

// UpdateStatus moves a complaint along its lifecycle. Scope is checked before legality,
// legality before the actor's role.
func (s *ComplaintService) UpdateStatus(ctx context.Context, p *models.Principal, req dto.StatusUpdateRequest, meta RequestMeta) (*models.Complaint, error) {
	d, err := s.authorize(p, access.ResourceComplaint, access.OpUpdateStatus)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid status payload")
	}

	complaint, err := s.load(ctx, d, req.ID)
	if err != nil {
		return nil, err
	}
	from, to := complaint.Status, models.ComplaintStatus(strings.ToUpper(req.Status))
	if err := access.ComplaintTransition(p, from, to); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, complaint.ID, from, to); err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "complaint status changed concurrently")
		}
		return nil, storeError(err, "failed to update complaint")
	}
	complaint.Status = to

	s.audit.record(ctx, p, meta, models.AuditActionStatusChange, string(access.ResourceComplaint), complaint.ID,
		map[string]string{"status": string(from)}, map[string]string{"status": string(to)})
	publish(ctx, s.events, EventComplaintStatusChanged, map[string]string{
		"complaintId": complaint.ID,
		"studentId":   complaint.StudentID,
		"from":        string(from),
		"to":          string(to),
	})
	s.invalidateStats(ctx)
	return complaint, nil
}

func (s *ComplaintService) load(ctx context.Context, d access.Decision, id string) (*models.Complaint, error) {
	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "complaint")
	}
	if !d.Permits(access.TargetOf(complaint.StudentID, nil, complaint.BlockID)) {
		return nil, outOfScope()
	}
	return complaint, nil
}
