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

// ExportLimit caps the rows rendered into a ledger export.
const ExportLimit = 5000

const paymentFrom = ` FROM payments p
JOIN students s ON s.id = p.student_id
JOIN users u ON u.id = s.user_id
LEFT JOIN rooms r ON r.id = s.room_id`

var paymentScope = scopeColumns{Block: "r.block_id", Student: "p.student_id", Room: "s.room_id"}

// PaymentRepository persists the append-only payment ledger. It has no update or delete.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) compose(f access.Filter, params models.PaymentFilter) *composer {
	c := &composer{}
	c.scope(f, paymentScope)
	if params.Status != "" {
		c.where("p.status = ?", params.Status)
	}
	if params.From != nil {
		c.where("p.payment_date >= ?", *params.From)
	}
	if params.To != nil {
		c.where("p.payment_date < ?", *params.To)
	}
	return c
}

// List returns ledger entries visible through f, newest first.
func (r *PaymentRepository) List(ctx context.Context, f access.Filter, params models.PaymentFilter) ([]models.Payment, int, error) {
	c := r.compose(f, params)
	query := `SELECT p.id, p.student_id, u.full_name AS student_name, p.amount, p.status, p.payment_date, p.recorded_by_id` +
		paymentFrom + c.clause() + ` ORDER BY p.payment_date DESC, p.id` + c.page(params.Page, params.Limit)
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+paymentFrom+c.clause(), c.args...); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}
	return payments, total, nil
}

// ListForExport returns up to ExportLimit entries visible through f.
func (r *PaymentRepository) ListForExport(ctx context.Context, f access.Filter, params models.PaymentFilter) ([]models.Payment, error) {
	c := r.compose(f, params)
	query := `SELECT p.id, p.student_id, u.full_name AS student_name, p.amount, p.status, p.payment_date, p.recorded_by_id` +
		paymentFrom + c.clause() + fmt.Sprintf(` ORDER BY p.payment_date DESC, p.id LIMIT %d`, ExportLimit)
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, c.args...); err != nil {
		return nil, fmt.Errorf("export payments: %w", err)
	}
	return payments, nil
}

// Create appends a ledger entry.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now().UTC()
	}
	const query = `INSERT INTO payments (id, student_id, amount, status, payment_date, recorded_by_id) VALUES (:id, :student_id, :amount, :status, :payment_date, :recorded_by_id)`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return wrap("create payment", err)
	}
	return nil
}
