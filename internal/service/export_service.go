package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/pkg/export"
)

// Export formats.
const (
	ExportCSV = "csv"
	ExportPDF = "pdf"
)

type tableRenderer interface {
	ContentType() string
	Extension() string
	Render(t export.Table) ([]byte, error)
}

// ExportFile is a rendered document ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders ledgers into downloadable documents.
type ExportService struct {
	renderers map[string]tableRenderer
	now       func() time.Time
}

// NewExportService constructs an ExportService with the CSV and PDF renderers.
func NewExportService() *ExportService {
	return &ExportService{
		renderers: map[string]tableRenderer{
			ExportCSV: export.NewCSVRenderer(),
			ExportPDF: export.NewPDFRenderer(),
		},
		now: time.Now,
	}
}

var paymentColumns = []export.Column{
	{Key: "id", Label: "Payment ID", Width: 70},
	{Key: "student", Label: "Student", Width: 60},
	{Key: "amount", Label: "Amount", Width: 35},
	{Key: "status", Label: "Status", Width: 30},
	{Key: "date", Label: "Paid At"},
}

// Payments renders payments in format. The footer carries the total of PAID entries.
func (s *ExportService) Payments(payments []models.Payment, format string) (*ExportFile, error) {
	if format == "" {
		format = ExportCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	rows := make([]map[string]string, 0, len(payments))
	var paid int64
	for _, p := range payments {
		student := p.StudentName
		if student == "" {
			student = p.StudentID
		}
		if p.Status == models.PaymentPaid {
			paid += p.Amount
		}
		rows = append(rows, map[string]string{
			"id":      p.ID,
			"student": student,
			"amount":  formatAmount(p.Amount),
			"status":  string(p.Status),
			"date":    p.PaymentDate.UTC().Format("2006-01-02 15:04"),
		})
	}

	generated := s.now().UTC()
	data, err := renderer.Render(export.Table{
		Title:   "Payment ledger",
		Columns: paymentColumns,
		Rows:    rows,
		Footer:  fmt.Sprintf("%d entries, %s paid, generated %s", len(rows), formatAmount(paid), generated.Format(time.RFC3339)),
	})
	if err != nil {
		return nil, fmt.Errorf("render payments: %w", err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("payments-%s.%s", generated.Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

// formatAmount renders minor units with two decimals.
func formatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return sign + strconv.FormatInt(minor/100, 10) + "." + fmt.Sprintf("%02d", minor%100)
}
