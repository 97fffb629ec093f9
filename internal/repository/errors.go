package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrDuplicate reports a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReference reports a foreign key violation.
	ErrReference = errors.New("referenced record does not exist")
	// ErrConditionFailed reports a conditional update that matched no row.
	ErrConditionFailed = errors.New("condition not met")
	// ErrRoomFull reports an assignment against a room without free beds.
	ErrRoomFull = errors.New("room at capacity")
)

// wrap annotates err with op and classifies PostgreSQL constraint violations.
func wrap(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		case "23503":
			return fmt.Errorf("%s: %w", op, ErrReference)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
