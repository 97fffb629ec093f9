package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/models"
)

// AnalyticsRepository runs the aggregate queries behind statistics and the admin dashboard.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository constructs an AnalyticsRepository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Stats counts students, unresolved complaints and pending leave requests visible through f.
func (r *AnalyticsRepository) Stats(ctx context.Context, f access.Filter) (*models.HostelStats, error) {
	var stats models.HostelStats

	var students composer
	students.scope(f, studentScope)
	if err := r.db.GetContext(ctx, &stats.Students, `SELECT COUNT(*) FROM students s LEFT JOIN rooms r ON r.id = s.room_id`+students.clause(), students.args...); err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}

	var complaints composer
	complaints.scope(f, complaintScope)
	complaints.where("c.status IN (?, ?)", models.ComplaintOpen, models.ComplaintInProgress)
	if err := r.db.GetContext(ctx, &stats.Complaints, `SELECT COUNT(*) FROM complaints c JOIN students s ON s.id = c.student_id LEFT JOIN rooms r ON r.id = s.room_id`+complaints.clause(), complaints.args...); err != nil {
		return nil, fmt.Errorf("count complaints: %w", err)
	}

	var leaves composer
	leaves.scope(f, leaveScope)
	leaves.where("l.status = ?", models.LeavePending)
	if err := r.db.GetContext(ctx, &stats.Leaves, `SELECT COUNT(*) FROM leave_requests l JOIN students s ON s.id = l.student_id LEFT JOIN rooms r ON r.id = s.room_id`+leaves.clause(), leaves.args...); err != nil {
		return nil, fmt.Errorf("count leave requests: %w", err)
	}

	return &stats, nil
}

// StudentCountByBlock counts housed students per block.
func (r *AnalyticsRepository) StudentCountByBlock(ctx context.Context) ([]models.BlockCount, error) {
	const query = `SELECT b.id AS block_id, b.name AS block_name, COUNT(s.id) AS students
FROM blocks b
LEFT JOIN rooms r ON r.block_id = b.id
LEFT JOIN students s ON s.room_id = r.id
GROUP BY b.id, b.name
ORDER BY b.name`
	var rows []models.BlockCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("student count by block: %w", err)
	}
	return rows, nil
}

// MonthlyPayments totals PAID entries per month since the given instant.
func (r *AnalyticsRepository) MonthlyPayments(ctx context.Context, since time.Time) ([]models.MonthlyPayment, error) {
	const query = `SELECT to_char(date_trunc('month', payment_date), 'YYYY-MM') AS month, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count
FROM payments
WHERE status = $1 AND payment_date >= $2
GROUP BY 1
ORDER BY 1`
	var rows []models.MonthlyPayment
	if err := r.db.SelectContext(ctx, &rows, query, models.PaymentPaid, since); err != nil {
		return nil, fmt.Errorf("monthly payments: %w", err)
	}
	return rows, nil
}

// ComplaintSummary counts complaints per status.
func (r *AnalyticsRepository) ComplaintSummary(ctx context.Context) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM complaints GROUP BY status ORDER BY status`
	var rows []models.StatusCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("complaint summary: %w", err)
	}
	return rows, nil
}

// LeaveTrends counts leave requests per month and status since the given instant.
func (r *AnalyticsRepository) LeaveTrends(ctx context.Context, since time.Time) ([]models.LeaveTrend, error) {
	const query = `SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, status, COUNT(*) AS count
FROM leave_requests
WHERE created_at >= $1
GROUP BY 1, 2
ORDER BY 1, 2`
	var rows []models.LeaveTrend
	if err := r.db.SelectContext(ctx, &rows, query, since); err != nil {
		return nil, fmt.Errorf("leave trends: %w", err)
	}
	return rows, nil
}
