package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-api/internal/dto"
	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/internal/service"
	"github.com/noah-isme/hostel-api/pkg/response"
)

type announcementService interface {
	List(ctx context.Context, p *models.Principal, q dto.ListQuery) ([]models.Announcement, *models.Pagination, error)
	Create(ctx context.Context, p *models.Principal, req dto.CreateAnnouncementRequest, meta service.RequestMeta) (*models.Announcement, error)
}

// AnnouncementHandler serves the announcement feed.
type AnnouncementHandler struct {
	announcements announcementService
}

// NewAnnouncementHandler constructs AnnouncementHandler.
func NewAnnouncementHandler(announcements announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

// List godoc
// @Summary Announcement feed
// @Description Global announcements plus those for the caller's block.
// @Tags Announcements
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var q dto.ListQuery
	if err := bindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.announcements.List(c.Request.Context(), p, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Create godoc
// @Summary Publish announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body dto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var req dto.CreateAnnouncementRequest
	if err := bindStrictJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.announcements.Create(c.Request.Context(), p, req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}
