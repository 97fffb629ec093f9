package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/pkg/database"
)

var attendanceScope = scopeColumns{Block: "r.block_id", Student: "a.student_id", Room: "s.room_id"}

// AttendanceRepository persists daily attendance. At most one record exists per student and day.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns attendance visible through f within the inclusive date window of params.
func (r *AttendanceRepository) List(ctx context.Context, f access.Filter, params models.AttendanceFilter) ([]models.Attendance, int, error) {
	var c composer
	c.scope(f, attendanceScope)
	c.where("a.date BETWEEN ? AND ?", params.From, params.To)
	if params.StudentID != "" {
		c.where("a.student_id = ?", params.StudentID)
	}

	from := ` FROM attendance a
JOIN students s ON s.id = a.student_id
JOIN users u ON u.id = s.user_id
LEFT JOIN rooms r ON r.id = s.room_id`
	query := `SELECT a.id, a.student_id, u.full_name AS student_name, a.date, a.present, a.marked_by_id, a.created_at` + from + c.clause() +
		` ORDER BY a.date DESC, u.full_name` + c.page(params.Page, params.Limit)
	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+from+c.clause(), c.args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}
	return records, total, nil
}

// CreateBatch inserts records in one transaction. Records for a student already marked on
// that day are skipped and their student ids returned.
func (r *AttendanceRepository) CreateBatch(ctx context.Context, records []models.Attendance) ([]models.Attendance, []string, error) {
	created := make([]models.Attendance, 0, len(records))
	var skipped []string

	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const query = `INSERT INTO attendance (id, student_id, date, present, marked_by_id, created_at) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (student_id, date) DO NOTHING`
		now := time.Now().UTC()
		for _, rec := range records {
			if rec.ID == "" {
				rec.ID = uuid.NewString()
			}
			rec.CreatedAt = now
			res, err := tx.ExecContext(ctx, query, rec.ID, rec.StudentID, rec.Date, rec.Present, rec.MarkedByID, rec.CreatedAt)
			if err != nil {
				return wrap("mark attendance", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("mark attendance: %w", err)
			}
			if n == 0 {
				skipped = append(skipped, rec.StudentID)
				continue
			}
			created = append(created, rec)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return created, skipped, nil
}
