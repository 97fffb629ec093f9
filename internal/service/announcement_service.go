package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/dto"
	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

type announcementRepository interface {
	List(ctx context.Context, f access.Filter, params models.AnnouncementFilter) ([]models.Announcement, int, error)
	Create(ctx context.Context, a *models.Announcement) error
}

// AnnouncementService publishes notices. Students and wardens read global notices plus their block's.
type AnnouncementService struct {
	base
	repo   announcementRepository
	blocks roomBlockLookup
}

// NewAnnouncementService constructs an AnnouncementService.
func NewAnnouncementService(repo announcementRepository, blocks roomBlockLookup, support Support) *AnnouncementService {
	return &AnnouncementService{base: newBase(support), repo: repo, blocks: blocks}
}

// List returns the announcement feed for p, newest first.
func (s *AnnouncementService) List(ctx context.Context, p *models.Principal, q dto.ListQuery) ([]models.Announcement, *models.Pagination, error) {
	d, err := s.authorize(p, access.ResourceAnnouncement, access.OpList)
	if err != nil {
		return nil, nil, err
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, nil, validationError(err, "invalid announcement query")
	}
	items, total, err := s.repo.List(ctx, d.Filter, models.AnnouncementFilter{Page: q.Page, Limit: q.Limit})
	if err != nil {
		return nil, nil, storeError(err, "failed to list announcements")
	}
	return items, pagination(q.Page, q.Limit, total), nil
}

// Create publishes an announcement. Wardens always publish to their own block.
func (s *AnnouncementService) Create(ctx context.Context, p *models.Principal, req dto.CreateAnnouncementRequest, meta RequestMeta) (*models.Announcement, error) {
	d, err := s.authorize(p, access.ResourceAnnouncement, access.OpCreate)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid announcement payload")
	}

	blockID := strings.TrimSpace(req.BlockID)
	if p.Role == models.RoleWarden {
		if blockID != "" && blockID != p.BlockID {
			return nil, outOfScope()
		}
		blockID = p.BlockID
	}
	if !d.Permits(access.Target{BlockID: blockID}) {
		return nil, outOfScope()
	}
	if blockID != "" {
		if _, err := s.blocks.FindByID(ctx, blockID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "block does not exist")
			}
			return nil, appErrors.Internal(err, "failed to load block")
		}
	}

	announcement := &models.Announcement{
		Title:       strings.TrimSpace(req.Title),
		Message:     strings.TrimSpace(req.Message),
		BlockID:     strPtr(blockID),
		CreatedByID: p.UserID,
	}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, storeError(err, "failed to create announcement")
	}

	s.audit.record(ctx, p, meta, models.AuditActionCreate, string(access.ResourceAnnouncement), announcement.ID, nil, announcement)
	publish(ctx, s.events, EventAnnouncementCreated, map[string]string{
		"announcementId": announcement.ID,
		"blockId":        blockID,
		"title":          announcement.Title,
	})
	return announcement, nil
}
