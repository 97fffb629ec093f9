package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/models"
)

var announcementScope = scopeColumns{Block: "a.block_id"}

// AnnouncementRepository persists announcements. A NULL block marks a global announcement.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository constructs an AnnouncementRepository.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// List returns the announcements visible through f, newest first.
func (r *AnnouncementRepository) List(ctx context.Context, f access.Filter, params models.AnnouncementFilter) ([]models.Announcement, int, error) {
	var c composer
	c.scope(f, announcementScope)

	query := `SELECT a.id, a.title, a.message, a.block_id, a.created_by_id, u.full_name AS created_by_name, a.created_at
FROM announcements a JOIN users u ON u.id = a.created_by_id` + c.clause() + ` ORDER BY a.created_at DESC, a.id` + c.page(params.Page, params.Limit)
	var items []models.Announcement
	if err := r.db.SelectContext(ctx, &items, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM announcements a`+c.clause(), c.args...); err != nil {
		return nil, 0, fmt.Errorf("count announcements: %w", err)
	}
	return items, total, nil
}

// Create inserts an announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO announcements (id, title, message, block_id, created_by_id, created_at) VALUES (:id, :title, :message, :block_id, :created_by_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return wrap("create announcement", err)
	}
	return nil
}
