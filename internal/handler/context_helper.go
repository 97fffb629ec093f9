package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-api/internal/middleware"
	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/internal/service"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
	"github.com/noah-isme/hostel-api/pkg/response"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// principal returns the resolved principal or writes a 401 and returns nil.
func principal(c *gin.Context) *models.Principal {
	p := middleware.PrincipalFromContext(c)
	if p == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
	}
	return p
}

func requestMeta(c *gin.Context) service.RequestMeta {
	return service.RequestMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}

// bindStrictJSON decodes the body into dest and rejects unknown fields and trailing data.
// Field validation is left to the services.
func bindStrictJSON(c *gin.Context, dest interface{}) error {
	if c.Request.Body == nil {
		return appErrors.Clone(appErrors.ErrValidation, "request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(c.Request.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return appErrors.Clone(appErrors.ErrValidation, "request body is required")
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed request body")
	}
	if dec.More() {
		return appErrors.Clone(appErrors.ErrValidation, "unexpected data after request body")
	}
	return nil
}

func bindQuery(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindQuery(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters")
	}
	return nil
}
