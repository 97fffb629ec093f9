package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/internal/repository"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type auditRepository interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// eventPublisher receives hostel domain events after a successful write.
type eventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// Support bundles the collaborators shared by the domain services.
type Support struct {
	Authorizer *access.Authorizer
	Validator  *validator.Validate
	Audit      auditRepository
	Events     eventPublisher
	Cache      cacheInvalidator
	Logger     *zap.Logger
}

type base struct {
	authz     *access.Authorizer
	validator *validator.Validate
	logger    *zap.Logger
	audit     auditor
	events    eventPublisher
	cache     cacheInvalidator
}

func newBase(s Support) base {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.Validator == nil {
		s.Validator = validator.New()
	}
	return base{
		authz:     s.Authorizer,
		validator: s.Validator,
		logger:    s.Logger,
		audit:     auditor{repo: s.Audit, logger: s.Logger},
		events:    s.Events,
		cache:     s.Cache,
	}
}

// authorize returns the decision for p, or the denial as an error.
func (b base) authorize(p *models.Principal, res access.Resource, op access.Operation) (access.Decision, error) {
	d := b.authz.Authorize(p, res, op)
	return d, d.Err()
}

func (b base) invalidateStats(ctx context.Context) {
	if b.cache == nil {
		return
	}
	if err := b.cache.Invalidate(ctx, statsCachePattern); err != nil {
		b.logger.Debug("stats cache not invalidated", zap.Error(err))
	}
}

func outOfScope() error {
	return appErrors.Denied(access.ReasonOutOfScope)
}

// RequestMeta carries client details recorded in the audit trail.
type RequestMeta struct {
	IP        string
	UserAgent string
}

func validationError(err error, message string) error {
	return appErrors.Invalid(err, message)
}

// lookupError maps a single-row read failure.
func lookupError(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFound(what)
	}
	return appErrors.Internal(err, "failed to load "+what)
}

// storeError maps a write failure, turning constraint violations into client errors.
func storeError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrAlreadyExists, "already exists")
	case errors.Is(err, repository.ErrReference):
		return appErrors.Clone(appErrors.ErrValidation, "referenced record does not exist")
	}
	return appErrors.Internal(err, message)
}

func pagination(page, limit, total int) *models.Pagination {
	page, limit = repository.NormalizePage(page, limit)
	return &models.Pagination{Page: page, Limit: limit, TotalCount: total}
}

func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, raw, time.UTC)
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// auditor writes audit rows without failing the surrounding operation.
type auditor struct {
	repo   auditRepository
	logger *zap.Logger
}

func (a auditor) record(ctx context.Context, actor *models.Principal, meta RequestMeta, action, resource, resourceID string, oldValues, newValues interface{}) {
	if a.repo == nil {
		return
	}
	entry := &models.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: strPtr(resourceID),
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}
	if actor != nil {
		entry.UserID = strPtr(actor.UserID)
	}
	if oldValues != nil {
		entry.OldValues, _ = json.Marshal(oldValues)
	}
	if newValues != nil {
		entry.NewValues, _ = json.Marshal(newValues)
	}
	if err := a.repo.CreateAuditLog(ctx, entry); err != nil && a.logger != nil {
		a.logger.Warn("failed to record audit log", zap.String("action", action), zap.String("resource", resource), zap.Error(err))
	}
}

func publish(ctx context.Context, events eventPublisher, eventType string, payload interface{}) {
	if events == nil {
		return
	}
	events.Publish(ctx, eventType, payload)
}
