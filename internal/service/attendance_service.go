package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/dto"
	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

type attendanceRepository interface {
	List(ctx context.Context, f access.Filter, params models.AttendanceFilter) ([]models.Attendance, int, error)
	CreateBatch(ctx context.Context, records []models.Attendance) ([]models.Attendance, []string, error)
}

type attendanceStudentLookup interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// AttendanceService records daily presence. A student is marked at most once per day.
type AttendanceService struct {
	base
	repo     attendanceRepository
	students attendanceStudentLookup
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, students attendanceStudentLookup, support Support) *AttendanceService {
	return &AttendanceService{base: newBase(support), repo: repo, students: students}
}

// List returns attendance inside p's scope for a date window, today by default.
func (s *AttendanceService) List(ctx context.Context, p *models.Principal, q dto.AttendanceListQuery) ([]models.Attendance, *models.Pagination, error) {
	d, err := s.authorize(p, access.ResourceAttendance, access.OpList)
	if err != nil {
		return nil, nil, err
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, nil, validationError(err, "invalid attendance query")
	}
	from, to, err := dateWindow(q.From, q.To)
	if err != nil {
		return nil, nil, err
	}
	records, total, err := s.repo.List(ctx, d.Filter, models.AttendanceFilter{
		From:      from,
		To:        to,
		StudentID: q.StudentID,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		return nil, nil, storeError(err, "failed to list attendance")
	}
	return records, pagination(q.Page, q.Limit, total), nil
}

// Mark records attendance for every entry. The whole batch is rejected when any student
// is unknown or outside p's scope. Repeated entries and students already marked that day are skipped.
func (s *AttendanceService) Mark(ctx context.Context, p *models.Principal, req dto.MarkAttendanceRequest, meta RequestMeta) (*dto.MarkAttendanceResult, error) {
	d, err := s.authorize(p, access.ResourceAttendance, access.OpCreate)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}

	date := today()
	if req.Date != "" {
		if date, err = parseDate(req.Date); err != nil {
			return nil, validationError(err, "invalid date")
		}
	}

	result := &dto.MarkAttendanceResult{Created: []models.Attendance{}, Skipped: []string{}}
	seen := make(map[string]struct{}, len(req.Entries))
	records := make([]models.Attendance, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if _, dup := seen[entry.StudentID]; dup {
			result.Skipped = append(result.Skipped, entry.StudentID)
			continue
		}
		seen[entry.StudentID] = struct{}{}

		student, err := s.students.FindByID(ctx, entry.StudentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown student %s", entry.StudentID))
			}
			return nil, appErrors.Internal(err, "failed to load student")
		}
		if !d.Permits(access.TargetOf(student.ID, student.RoomID, student.BlockID)) {
			return nil, outOfScope()
		}
		records = append(records, models.Attendance{
			StudentID:   student.ID,
			StudentName: student.FullName,
			Date:        date,
			Present:     *entry.Present,
			MarkedByID:  p.UserID,
		})
	}

	created, skipped, err := s.repo.CreateBatch(ctx, records)
	if err != nil {
		return nil, storeError(err, "failed to mark attendance")
	}
	result.Created = append(result.Created, created...)
	result.Skipped = append(result.Skipped, skipped...)

	s.audit.record(ctx, p, meta, models.AuditActionAttendanceMark, string(access.ResourceAttendance), date.Format(dateLayout), nil, map[string]int{
		"created": len(result.Created),
		"skipped": len(result.Skipped),
	})
	return result, nil
}

// dateWindow resolves optional bounds. A single bound selects that day; none selects today.
func dateWindow(rawFrom, rawTo string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if rawFrom != "" {
		if from, err = parseDate(rawFrom); err != nil {
			return from, to, validationError(err, "invalid from date")
		}
	}
	if rawTo != "" {
		if to, err = parseDate(rawTo); err != nil {
			return from, to, validationError(err, "invalid to date")
		}
	}
	switch {
	case from.IsZero() && to.IsZero():
		from = today()
		to = from
	case from.IsZero():
		from = to
	case to.IsZero():
		to = from
	}
	if to.Before(from) {
		return from, to, appErrors.Clone(appErrors.ErrValidation, "to must not be before from")
	}
	return from, to, nil
}
