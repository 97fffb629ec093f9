package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/models"
)

func TestPaymentListOwnLedger(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_id", "student_name", "amount", "status", "payment_date", "recorded_by_id"}).
		AddRow("p1", "s1", "Sam", int64(150000), "PAID", now, "u-s1")
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.student_id = $1 AND p.status = $2 ORDER BY p.payment_date DESC`)).
		WithArgs("s1", "PAID").
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT`).WithArgs("s1", "PAID").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	items, total, err := repo.List(context.Background(), access.Filter{StudentID: "s1"}, models.PaymentFilter{Status: models.PaymentPaid})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(150000), items[0].Amount)
	assert.Equal(t, 1, total)
}

func TestPaymentExportCapsRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY p.payment_date DESC, p.id LIMIT 5000`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ListForExport(context.Background(), access.Filter{}, models.PaymentFilter{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentCreateStampsDate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(1, 1))

	p := &models.Payment{StudentID: "s1", Amount: 1000, Status: models.PaymentPaid}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.False(t, p.PaymentDate.IsZero())
}
