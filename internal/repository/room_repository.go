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
	"github.com/noah-isme/hostel-api/pkg/database"
)

const roomSelect = `SELECT r.id, r.room_number, r.capacity, r.occupied, r.block_id, b.name AS block_name, r.created_at FROM rooms r JOIN blocks b ON b.id = r.block_id`

var roomScope = scopeColumns{Block: "r.block_id", Room: "r.id"}

// RoomRepository persists rooms and performs atomic room assignment.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs a RoomRepository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns rooms visible through f narrowed by params, with the total count.
func (r *RoomRepository) List(ctx context.Context, f access.Filter, params models.RoomFilter) ([]models.Room, int, error) {
	var c composer
	c.scope(f, roomScope)
	if params.BlockID != "" {
		c.where("r.block_id = ?", params.BlockID)
	}
	if params.AvailableOnly {
		c.where("r.occupied < r.capacity")
	}

	query := roomSelect + c.clause() + ` ORDER BY b.name, r.room_number` + c.page(params.Page, params.Limit)
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM rooms r JOIN blocks b ON b.id = r.block_id` + c.clause()
	if err := r.db.GetContext(ctx, &total, countQuery, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}
	return rooms, total, nil
}

// FindByID returns a room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	query := roomSelect + ` WHERE r.id = $1`
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return &room, nil
}

// Residents lists the students currently living in a room.
func (r *RoomRepository) Residents(ctx context.Context, roomID string) ([]models.Resident, error) {
	const query = `SELECT s.id, u.full_name, s.roll_no FROM students s JOIN users u ON u.id = s.user_id WHERE s.room_id = $1 ORDER BY s.roll_no`
	var residents []models.Resident
	if err := r.db.SelectContext(ctx, &residents, query, roomID); err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	return residents, nil
}

// Create inserts an empty room. Room numbers are unique within a block.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}
	room.Occupied = 0
	const query = `INSERT INTO rooms (id, room_number, capacity, occupied, block_id, created_at) VALUES (:id, :room_number, :capacity, :occupied, :block_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		return wrap("create room", err)
	}
	return nil
}

// Assign moves an unassigned student into a room in one transaction.
// It returns ErrRoomFull when no bed is free and ErrConditionFailed when the student already has a room.
func (r *RoomRepository) Assign(ctx context.Context, roomID, studentID string) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return assignInTx(ctx, tx, roomID, studentID)
	})
}

// assignInTx performs the occupancy increment and student update as conditional writes,
// so concurrent assignments serialize on the room row.
func assignInTx(ctx context.Context, tx *sqlx.Tx, roomID, studentID string) error {
	res, err := tx.ExecContext(ctx, `UPDATE rooms SET occupied = occupied + 1 WHERE id = $1 AND occupied < capacity`, roomID)
	if err != nil {
		return fmt.Errorf("reserve bed: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("reserve bed: %w", err)
	} else if n == 0 {
		return ErrRoomFull
	}

	res, err = tx.ExecContext(ctx, `UPDATE students SET room_id = $1 WHERE id = $2 AND room_id IS NULL`, roomID, studentID)
	if err != nil {
		return fmt.Errorf("assign student: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("assign student: %w", err)
	} else if n == 0 {
		return ErrConditionFailed
	}
	return nil
}
