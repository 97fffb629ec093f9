package service

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/dto"
	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

type paymentRepository interface {
	List(ctx context.Context, f access.Filter, params models.PaymentFilter) ([]models.Payment, int, error)
	ListForExport(ctx context.Context, f access.Filter, params models.PaymentFilter) ([]models.Payment, error)
	Create(ctx context.Context, p *models.Payment) error
}

type paymentExporter interface {
	Payments(payments []models.Payment, format string) (*ExportFile, error)
}

// PaymentService maintains the append-only payment ledger.
type PaymentService struct {
	base
	repo     paymentRepository
	students attendanceStudentLookup
	exporter paymentExporter
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(repo paymentRepository, students attendanceStudentLookup, exporter paymentExporter, support Support) *PaymentService {
	if exporter == nil {
		exporter = NewExportService()
	}
	return &PaymentService{base: newBase(support), repo: repo, students: students, exporter: exporter}
}

// List returns ledger entries inside p's scope, newest first.
func (s *PaymentService) List(ctx context.Context, p *models.Principal, q dto.PaymentListQuery) ([]models.Payment, *models.Pagination, error) {
	d, err := s.authorize(p, access.ResourcePayment, access.OpList)
	if err != nil {
		return nil, nil, err
	}
	filter, err := s.filter(q)
	if err != nil {
		return nil, nil, err
	}
	items, total, err := s.repo.List(ctx, d.Filter, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list payments")
	}
	return items, pagination(q.Page, q.Limit, total), nil
}

// Create appends a ledger entry. Students submit PENDING payments for themselves and any other
// status is rejected; admins record entries for any student, PAID unless stated otherwise.
func (s *PaymentService) Create(ctx context.Context, p *models.Principal, req dto.CreatePaymentRequest, meta RequestMeta) (*models.Payment, error) {
	d, err := s.authorize(p, access.ResourcePayment, access.OpCreate)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid payment payload")
	}

	payment := &models.Payment{
		Amount:      int64(math.Round(req.Amount * 100)),
		PaymentDate: time.Now().UTC(),
		RecordedBy:  p.UserID,
	}
	if payment.Amount <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "amount must be at least 0.01")
	}

	if p.Role == models.RoleStudent {
		if req.Status != "" && models.PaymentStatus(req.Status) != models.PaymentPending {
			return nil, appErrors.Clone(appErrors.ErrValidation, "students may only submit PENDING payments")
		}
		if payment.StudentID, err = access.StampStudent(p, req.StudentID); err != nil {
			return nil, err
		}
		payment.Status = models.PaymentPending
	} else {
		studentID := strings.TrimSpace(req.StudentID)
		if studentID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
		}
		student, err := s.students.FindByID(ctx, studentID)
		if err != nil {
			return nil, lookupError(err, "student")
		}
		if !d.Permits(access.TargetOf(student.ID, student.RoomID, student.BlockID)) {
			return nil, outOfScope()
		}
		payment.StudentID = student.ID
		payment.StudentName = student.FullName
		payment.Status = models.PaymentStatus(req.Status)
		if payment.Status == "" {
			payment.Status = models.PaymentPaid
		}
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, storeError(err, "failed to record payment")
	}

	s.audit.record(ctx, p, meta, models.AuditActionPaymentRecorded, string(access.ResourcePayment), payment.ID, nil, payment)
	publish(ctx, s.events, EventPaymentRecorded, map[string]interface{}{
		"paymentId": payment.ID,
		"studentId": payment.StudentID,
		"amount":    payment.Amount,
		"status":    payment.Status,
	})
	s.invalidateStats(ctx)
	return payment, nil
}

// Export renders the ledger visible to p as CSV or PDF.
func (s *PaymentService) Export(ctx context.Context, p *models.Principal, q dto.PaymentExportQuery) (*ExportFile, error) {
	d, err := s.authorize(p, access.ResourcePayment, access.OpList)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, validationError(err, "invalid export query")
	}
	filter, err := s.filter(q.PaymentListQuery)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListForExport(ctx, d.Filter, filter)
	if err != nil {
		return nil, storeError(err, "failed to load payments")
	}
	file, err := s.exporter.Payments(items, q.Format)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}
	s.logger.Info("payments exported", zap.String("format", q.Format), zap.Int("rows", len(items)), zap.String("user_id", p.UserID))
	return file, nil
}

func (s *PaymentService) filter(q dto.PaymentListQuery) (models.PaymentFilter, error) {
	if err := s.validator.Struct(q); err != nil {
		return models.PaymentFilter{}, validationError(err, "invalid payment query")
	}
	filter := models.PaymentFilter{Status: models.PaymentStatus(q.Status), Page: q.Page, Limit: q.Limit}
	if q.From != "" {
		from, err := parseDate(q.From)
		if err != nil {
			return filter, validationError(err, "invalid from date")
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := parseDate(q.To)
		if err != nil {
			return filter, validationError(err, "invalid to date")
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return filter, appErrors.Clone(appErrors.ErrValidation, "to must not be before from")
	}
	return filter, nil
}
