package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

type identityUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type identityWardenRepository interface {
	FindWardenByUserID(ctx context.Context, userID string) (*models.Warden, error)
}

type identityStudentRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Student, error)
}

// IdentityService turns verified token claims into a request principal.
type IdentityService struct {
	users    identityUserRepository
	wardens  identityWardenRepository
	students identityStudentRepository
	logger   *zap.Logger
}

// NewIdentityService constructs an IdentityService.
func NewIdentityService(users identityUserRepository, wardens identityWardenRepository, students identityStudentRepository, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{users: users, wardens: wardens, students: students, logger: logger}
}

// Resolve loads the principal for claims. Role and scope come from stored records only.
// Any failure to establish the identity yields Unauthenticated.
func (s *IdentityService) Resolve(ctx context.Context, claims *models.JWTClaims) (*models.Principal, error) {
	if claims == nil || claims.UserID == "" {
		return nil, appErrors.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "account no longer exists")
		}
		return nil, appErrors.Internal(err, "failed to resolve identity")
	}
	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "account is inactive")
	}
	if !user.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "unknown role")
	}

	p := &models.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}
	switch user.Role {
	case models.RoleWarden:
		w, err := s.wardens.FindWardenByUserID(ctx, user.ID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			s.logger.Debug("warden has no assignment", zap.String("user_id", user.ID))
		case err != nil:
			return nil, appErrors.Internal(err, "failed to resolve warden scope")
		default:
			p.BlockID = deref(w.BlockID)
		}
	case models.RoleStudent:
		st, err := s.students.FindByUserID(ctx, user.ID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			s.logger.Debug("student account has no student record", zap.String("user_id", user.ID))
		case err != nil:
			return nil, appErrors.Internal(err, "failed to resolve student scope")
		default:
			p.StudentID = st.ID
			p.RoomID = deref(st.RoomID)
			p.BlockID = deref(st.BlockID)
		}
	}
	return p, nil
}
