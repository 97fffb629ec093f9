package service

import (
	"context"
	"strings"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/dto"
	"github.com/noah-isme/hostel-api/internal/models"
)

type blockRepository interface {
	List(ctx context.Context, f access.Filter) ([]models.Block, error)
	FindByID(ctx context.Context, id string) (*models.Block, error)
	Create(ctx context.Context, block *models.Block) error
}

// BlockService manages residential blocks.
type BlockService struct {
	base
	repo blockRepository
}

// NewBlockService constructs a BlockService.
func NewBlockService(repo blockRepository, support Support) *BlockService {
	return &BlockService{base: newBase(support), repo: repo}
}

// List returns the blocks visible to p.
func (s *BlockService) List(ctx context.Context, p *models.Principal) ([]models.Block, error) {
	d, err := s.authorize(p, access.ResourceBlock, access.OpList)
	if err != nil {
		return nil, err
	}
	blocks, err := s.repo.List(ctx, d.Filter)
	if err != nil {
		return nil, storeError(err, "failed to list blocks")
	}
	return blocks, nil
}

// Create adds a block.
func (s *BlockService) Create(ctx context.Context, p *models.Principal, req dto.CreateBlockRequest, meta RequestMeta) (*models.Block, error) {
	if _, err := s.authorize(p, access.ResourceBlock, access.OpCreate); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid block payload")
	}
	block := &models.Block{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.Create(ctx, block); err != nil {
		return nil, storeError(err, "failed to create block")
	}
	s.audit.record(ctx, p, meta, models.AuditActionCreate, string(access.ResourceBlock), block.ID, nil, block)
	return block, nil
}
