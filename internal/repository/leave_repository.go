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

const leaveSelect = `SELECT l.id, l.from_date, l.to_date, l.reason, l.status, l.student_id, u.full_name AS student_name, r.block_id, l.created_at, l.updated_at
FROM leave_requests l
JOIN students s ON s.id = l.student_id
JOIN users u ON u.id = s.user_id
LEFT JOIN rooms r ON r.id = s.room_id`

var leaveScope = scopeColumns{Block: "r.block_id", Student: "l.student_id", Room: "s.room_id"}

// LeaveRepository persists leave requests.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository constructs a LeaveRepository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// List returns leave requests visible through f, newest first.
func (r *LeaveRepository) List(ctx context.Context, f access.Filter, params models.LeaveFilter) ([]models.LeaveRequest, int, error) {
	var c composer
	c.scope(f, leaveScope)
	if params.Status != "" {
		c.where("l.status = ?", params.Status)
	}

	query := leaveSelect + c.clause() + ` ORDER BY l.created_at DESC, l.id` + c.page(params.Page, params.Limit)
	var leaves []models.LeaveRequest
	if err := r.db.SelectContext(ctx, &leaves, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list leave requests: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM leave_requests l JOIN students s ON s.id = l.student_id LEFT JOIN rooms r ON r.id = s.room_id` + c.clause()
	if err := r.db.GetContext(ctx, &total, countQuery, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count leave requests: %w", err)
	}
	return leaves, total, nil
}

// FindByID returns a leave request by id.
func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	query := leaveSelect + ` WHERE l.id = $1`
	var leave models.LeaveRequest
	if err := r.db.GetContext(ctx, &leave, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find leave request: %w", err)
	}
	return &leave, nil
}

// Create inserts a PENDING leave request.
func (r *LeaveRepository) Create(ctx context.Context, leave *models.LeaveRequest) error {
	if leave.ID == "" {
		leave.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	leave.CreatedAt = now
	leave.UpdatedAt = now
	leave.Status = models.LeavePending

	const query = `INSERT INTO leave_requests (id, from_date, to_date, reason, status, student_id, created_at, updated_at) VALUES (:id, :from_date, :to_date, :reason, :status, :student_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, leave); err != nil {
		return wrap("create leave request", err)
	}
	return nil
}

// UpdateStatus moves a leave request between states when its stored status equals from.
func (r *LeaveRepository) UpdateStatus(ctx context.Context, id string, from, to models.LeaveStatus) error {
	const query = `UPDATE leave_requests SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, from, to, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	if n == 0 {
		return ErrConditionFailed
	}
	return nil
}
