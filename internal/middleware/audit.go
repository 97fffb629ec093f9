package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/hostel-api/internal/models"
)

// AuditActionAccessDenied marks audit rows written for rejected requests.
const AuditActionAccessDenied = "ACCESS_DENIED"

type auditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AuditDenied records authenticated requests that ended in 403 so repeated attempts against
// other blocks or students show up in the audit trail.
func AuditDenied(repo auditWriter, resource string, l *zap.Logger) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() != http.StatusForbidden || repo == nil {
			return
		}
		p := PrincipalFromContext(c)
		if p == nil {
			return
		}

		body, _ := json.Marshal(map[string]interface{}{
			"path":   c.FullPath(),
			"method": c.Request.Method,
			"role":   p.Role,
		})
		userID := p.UserID
		entry := &models.AuditLog{
			UserID:    &userID,
			Action:    AuditActionAccessDenied,
			Resource:  resource,
			NewValues: body,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if id := c.Param("id"); id != "" {
			entry.ResourceID = &id
		}
		if err := repo.CreateAuditLog(c.Request.Context(), entry); err != nil {
			l.Warn("failed to record denied request", zap.Error(err))
		}
	}
}
