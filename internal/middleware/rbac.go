package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
	"github.com/noah-isme/hostel-api/pkg/response"
)

// RequireRoles rejects principals whose role is not listed. It is a coarse route gate;
// record scope is still checked by the services.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		p := PrincipalFromContext(c)
		if p == nil {
			response.Error(c, appErrors.ErrUnauthenticated)
			return
		}
		if _, ok := allowed[p.Role]; !ok {
			response.Error(c, appErrors.Denied("role not permitted"))
			return
		}
		c.Next()
	}
}
