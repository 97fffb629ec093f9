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

type roomRepository interface {
	List(ctx context.Context, f access.Filter, params models.RoomFilter) ([]models.Room, int, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Residents(ctx context.Context, roomID string) ([]models.Resident, error)
	Create(ctx context.Context, room *models.Room) error
}

type roomBlockLookup interface {
	FindByID(ctx context.Context, id string) (*models.Block, error)
}

// RoomService exposes the room inventory.
type RoomService struct {
	base
	repo   roomRepository
	blocks roomBlockLookup
}

// NewRoomService constructs a RoomService.
func NewRoomService(repo roomRepository, blocks roomBlockLookup, support Support) *RoomService {
	return &RoomService{base: newBase(support), repo: repo, blocks: blocks}
}

// List returns rooms inside p's scope. Residents are not expanded in lists.
func (s *RoomService) List(ctx context.Context, p *models.Principal, q dto.RoomListQuery) ([]access.RoomView, *models.Pagination, error) {
	d, err := s.authorize(p, access.ResourceRoom, access.OpList)
	if err != nil {
		return nil, nil, err
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, nil, validationError(err, "invalid room query")
	}
	rooms, total, err := s.repo.List(ctx, d.Filter, models.RoomFilter{
		BlockID:       q.BlockID,
		AvailableOnly: q.Available,
		Page:          q.Page,
		Limit:         q.Limit,
	})
	if err != nil {
		return nil, nil, storeError(err, "failed to list rooms")
	}
	views := make([]access.RoomView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, access.ShapeRoom(p, room, nil))
	}
	return views, pagination(q.Page, q.Limit, total), nil
}

// Get returns one room, with residents for staff.
func (s *RoomService) Get(ctx context.Context, p *models.Principal, id string) (*access.RoomView, error) {
	d, err := s.authorize(p, access.ResourceRoom, access.OpRead)
	if err != nil {
		return nil, err
	}
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "room")
	}
	if !d.Permits(access.Target{RoomID: room.ID, BlockID: room.BlockID}) {
		return nil, outOfScope()
	}

	var residents []models.Resident
	if p.Role != models.RoleStudent {
		residents, err = s.repo.Residents(ctx, room.ID)
		if err != nil {
			return nil, storeError(err, "failed to load residents")
		}
	}
	view := access.ShapeRoom(p, *room, residents)
	return &view, nil
}

// Mine returns the caller's own room.
func (s *RoomService) Mine(ctx context.Context, p *models.Principal) (*access.RoomView, error) {
	if !p.HasStudentScope() {
		if _, err := s.authorize(p, access.ResourceRoom, access.OpRead); err != nil {
			return nil, err
		}
		return nil, appErrors.Denied(access.ReasonNoStudent)
	}
	if p.RoomID == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, access.ReasonNoRoom)
	}
	return s.Get(ctx, p, p.RoomID)
}

// Create adds a room. Wardens create rooms in their own block.
func (s *RoomService) Create(ctx context.Context, p *models.Principal, req dto.CreateRoomRequest, meta RequestMeta) (*access.RoomView, error) {
	d, err := s.authorize(p, access.ResourceRoom, access.OpCreate)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid room payload")
	}

	blockID := strings.TrimSpace(req.BlockID)
	if blockID == "" && p.Role == models.RoleWarden {
		blockID = p.BlockID
	}
	if blockID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "blockId is required")
	}
	if !d.Permits(access.Target{BlockID: blockID}) {
		return nil, outOfScope()
	}
	block, err := s.blocks.FindByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "block does not exist")
		}
		return nil, appErrors.Internal(err, "failed to load block")
	}

	room := &models.Room{
		RoomNumber: strings.TrimSpace(req.RoomNumber),
		Capacity:   req.Capacity,
		BlockID:    block.ID,
		BlockName:  block.Name,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, storeError(err, "failed to create room")
	}
	s.audit.record(ctx, p, meta, models.AuditActionCreate, string(access.ResourceRoom), room.ID, nil, room)

	view := access.ShapeRoom(p, *room, nil)
	return &view, nil
}
