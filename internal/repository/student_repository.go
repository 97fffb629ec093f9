package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/pkg/database"
)

const studentSelect = `SELECT s.id, s.user_id, s.roll_no, s.parent_contact, s.room_id, u.full_name, u.email, r.room_number, r.block_id, s.created_at
FROM students s
JOIN users u ON u.id = s.user_id
LEFT JOIN rooms r ON r.id = s.room_id`

var studentScope = scopeColumns{Block: "r.block_id", Student: "s.id", Room: "s.room_id"}

// StudentRepository persists resident records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students visible through f narrowed by params, with the total count.
func (r *StudentRepository) List(ctx context.Context, f access.Filter, params models.StudentFilter) ([]models.Student, int, error) {
	var c composer
	c.scope(f, studentScope)
	if params.RoomID != "" {
		c.where("s.room_id = ?", params.RoomID)
	}
	if params.UnassignedOnly {
		c.where("s.room_id IS NULL")
	}
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		c.where("(LOWER(u.full_name) LIKE ? OR LOWER(s.roll_no) LIKE ?)", term, term)
	}

	query := studentSelect + c.clause() + ` ORDER BY u.full_name, s.id` + c.page(params.Page, params.Limit)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM students s JOIN users u ON u.id = s.user_id LEFT JOIN rooms r ON r.id = s.room_id` + c.clause()
	if err := r.db.GetContext(ctx, &total, countQuery, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID returns a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return r.findOne(ctx, "s.id", id)
}

// FindByUserID returns the student record linked to a user account.
func (r *StudentRepository) FindByUserID(ctx context.Context, userID string) (*models.Student, error) {
	return r.findOne(ctx, "s.user_id", userID)
}

func (r *StudentRepository) findOne(ctx context.Context, column, value string) (*models.Student, error) {
	query := studentSelect + ` WHERE ` + column + ` = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// CreateWithUser inserts a STUDENT account and its student record in one transaction.
// When roomID is set the student is assigned through the same conditional writes as RoomRepository.Assign.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, student *models.Student, roomID string) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		if student.ID == "" {
			student.ID = uuid.NewString()
		}
		if student.CreatedAt.IsZero() {
			student.CreatedAt = time.Now().UTC()
		}
		student.UserID = user.ID
		student.RoomID = nil

		const query = `INSERT INTO students (id, user_id, roll_no, parent_contact, room_id, created_at) VALUES (:id, :user_id, :roll_no, :parent_contact, :room_id, :created_at)`
		if _, err := sqlx.NamedExecContext(ctx, tx, query, student); err != nil {
			return wrap("create student", err)
		}

		if roomID == "" {
			return nil
		}
		if err := assignInTx(ctx, tx, roomID, student.ID); err != nil {
			return err
		}
		student.RoomID = &roomID
		return nil
	})
}
