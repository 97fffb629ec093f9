package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/models"
)

var blockScope = scopeColumns{Block: "b.id"}

// BlockRepository persists residential blocks and warden assignments.
type BlockRepository struct {
	db *sqlx.DB
}

// NewBlockRepository constructs a BlockRepository.
func NewBlockRepository(db *sqlx.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// List returns the blocks visible through f ordered by name.
func (r *BlockRepository) List(ctx context.Context, f access.Filter) ([]models.Block, error) {
	var c composer
	c.scope(f, blockScope)
	query := `SELECT b.id, b.name, b.created_at FROM blocks b` + c.clause() + ` ORDER BY b.name`
	var blocks []models.Block
	if err := r.db.SelectContext(ctx, &blocks, query, c.args...); err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	return blocks, nil
}

// FindByID returns a block by id.
func (r *BlockRepository) FindByID(ctx context.Context, id string) (*models.Block, error) {
	const query = `SELECT id, name, created_at FROM blocks WHERE id = $1`
	var block models.Block
	if err := r.db.GetContext(ctx, &block, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find block: %w", err)
	}
	return &block, nil
}

// Create inserts a block. Names are unique.
func (r *BlockRepository) Create(ctx context.Context, block *models.Block) error {
	if block.ID == "" {
		block.ID = uuid.NewString()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO blocks (id, name, created_at) VALUES (:id, :name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, block); err != nil {
		return wrap("create block", err)
	}
	return nil
}

// FindWardenByUserID returns the warden row of a user.
func (r *BlockRepository) FindWardenByUserID(ctx context.Context, userID string) (*models.Warden, error) {
	const query = `SELECT id, user_id, block_id FROM wardens WHERE user_id = $1`
	var w models.Warden
	if err := r.db.GetContext(ctx, &w, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find warden: %w", err)
	}
	return &w, nil
}

// UpsertWarden assigns a warden user to a block, or unassigns it when BlockID is nil.
func (r *BlockRepository) UpsertWarden(ctx context.Context, w *models.Warden) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	const query = `INSERT INTO wardens (id, user_id, block_id) VALUES (:id, :user_id, :block_id)
ON CONFLICT (user_id) DO UPDATE SET block_id = EXCLUDED.block_id`
	if _, err := r.db.NamedExecContext(ctx, query, w); err != nil {
		return wrap("upsert warden", err)
	}
	return nil
}
