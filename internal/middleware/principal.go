package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
	"github.com/noah-isme/hostel-api/pkg/logger"
	"github.com/noah-isme/hostel-api/pkg/response"
)

type principalResolver interface {
	Resolve(ctx context.Context, claims *models.JWTClaims) (*models.Principal, error)
}

// Principal resolves the request principal from the verified claims. It must run after JWT.
// The role and scope are read from the store on every request.
func Principal(resolver principalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthenticated)
			return
		}

		p, err := resolver.Resolve(c.Request.Context(), claims)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ContextPrincipalKey, p)
		c.Set(logger.ActorIDKey, p.UserID)
		c.Set(logger.ActorRoleKey, string(p.Role))
		c.Next()
	}
}
