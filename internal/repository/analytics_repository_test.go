package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-api/internal/access"
)

func TestStatsScopedToWardenBlock(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM students s LEFT JOIN rooms r ON r.id = s.room_id WHERE r.block_id = $1`)).
		WithArgs("block-a").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE r.block_id = $1 AND c.status IN ($2, $3)`)).
		WithArgs("block-a", "OPEN", "IN_PROGRESS").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE r.block_id = $1 AND l.status = $2`)).
		WithArgs("block-a", "PENDING").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	stats, err := repo.Stats(context.Background(), access.Filter{RestrictBlock: true, BlockID: "block-a"})
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Students)
	assert.Equal(t, 3, stats.Complaints)
	assert.Equal(t, 2, stats.Leaves)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintSummary(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM complaints`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("OPEN", 4).AddRow("RESOLVED", 9))

	rows, err := repo.ComplaintSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 9, rows[1].Count)
}
