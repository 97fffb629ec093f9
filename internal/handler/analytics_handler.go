package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-api/internal/middleware"
	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/pkg/response"
)

type analyticsService interface {
	Stats(ctx context.Context, p *models.Principal) (*models.HostelStats, bool, error)
	Analytics(ctx context.Context, p *models.Principal) (*models.HostelAnalytics, bool, error)
}

// AnalyticsHandler exposes dashboard-ready aggregates.
type AnalyticsHandler struct {
	analytics analyticsService
}

// NewAnalyticsHandler constructs the analytics handler.
func NewAnalyticsHandler(analytics analyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Stats godoc
// @Summary Open work summary
// @Description Student count, open complaints and pending leave for the warden's block, or the hostel for admins.
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /stats [get]
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	stats, cacheHit, err := h.analytics.Stats(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}

// Analytics godoc
// @Summary Admin analytics
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /analytics [get]
func (h *AnalyticsHandler) Analytics(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	result, cacheHit, err := h.analytics.Analytics(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, result, nil, middleware.ExtractMeta(c))
}
