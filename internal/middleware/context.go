package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-api/internal/models"
)

// Gin context keys populated by the authentication chain.
const (
	ContextClaimsKey    = "jwtClaims"
	ContextPrincipalKey = "principal"
)

// ClaimsFromContext returns the verified token claims, if any.
func ClaimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}

// PrincipalFromContext returns the resolved principal, or nil for anonymous requests.
func PrincipalFromContext(c *gin.Context) *models.Principal {
	value, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return nil
	}
	p, _ := value.(*models.Principal)
	return p
}
