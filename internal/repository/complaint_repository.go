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

const complaintSelect = `SELECT c.id, c.title, c.description, c.status, c.student_id, u.full_name AS student_name, r.block_id, c.created_at, c.updated_at
FROM complaints c
JOIN students s ON s.id = c.student_id
JOIN users u ON u.id = s.user_id
LEFT JOIN rooms r ON r.id = s.room_id`

var complaintScope = scopeColumns{Block: "r.block_id", Student: "c.student_id", Room: "s.room_id"}

// ComplaintRepository persists complaints. A complaint's block is the block of its student's current room.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository constructs a ComplaintRepository.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// List returns complaints visible through f, newest first.
func (r *ComplaintRepository) List(ctx context.Context, f access.Filter, params models.ComplaintFilter) ([]models.Complaint, int, error) {
	var c composer
	c.scope(f, complaintScope)
	if params.Status != "" {
		c.where("c.status = ?", params.Status)
	}

	query := complaintSelect + c.clause() + ` ORDER BY c.created_at DESC, c.id` + c.page(params.Page, params.Limit)
	var complaints []models.Complaint
	if err := r.db.SelectContext(ctx, &complaints, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list complaints: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM complaints c JOIN students s ON s.id = c.student_id LEFT JOIN rooms r ON r.id = s.room_id` + c.clause()
	if err := r.db.GetContext(ctx, &total, countQuery, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count complaints: %w", err)
	}
	return complaints, total, nil
}

// FindByID returns a complaint by id.
func (r *ComplaintRepository) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	query := complaintSelect + ` WHERE c.id = $1`
	var complaint models.Complaint
	if err := r.db.GetContext(ctx, &complaint, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find complaint: %w", err)
	}
	return &complaint, nil
}

// Create inserts a complaint in the OPEN state.
func (r *ComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	complaint.Status = models.ComplaintOpen

	const query = `INSERT INTO complaints (id, title, description, status, student_id, created_at, updated_at) VALUES (:id, :title, :description, :status, :student_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, complaint); err != nil {
		return wrap("create complaint", err)
	}
	return nil
}

// UpdateStatus moves a complaint from one status to another. ErrConditionFailed means the
// stored status no longer equals from.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id string, from, to models.ComplaintStatus) error {
	const query = `UPDATE complaints SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, from, to, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update complaint status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update complaint status: %w", err)
	}
	if n == 0 {
		return ErrConditionFailed
	}
	return nil
}
