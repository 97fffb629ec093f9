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

type complaintService interface {
	List(ctx context.Context, p *models.Principal, q dto.ComplaintListQuery) ([]models.Complaint, *models.Pagination, error)
	Get(ctx context.Context, p *models.Principal, id string) (*models.Complaint, error)
	Create(ctx context.Context, p *models.Principal, req dto.CreateComplaintRequest, meta service.RequestMeta) (*models.Complaint, error)
	UpdateStatus(ctx context.Context, p *models.Principal, req dto.StatusUpdateRequest, meta service.RequestMeta) (*models.Complaint, error)
}

// ComplaintHandler exposes complaint endpoints.
type ComplaintHandler struct {
	complaints complaintService
}

// NewComplaintHandler constructs ComplaintHandler.
func NewComplaintHandler(complaints complaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

// List godoc
// @Summary List complaints
// @Tags Complaints
// @Produce json
// @Param status query string false "OPEN, IN_PROGRESS, RESOLVED or CLOSED"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /complaints [get]
func (h *ComplaintHandler) List(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var q dto.ComplaintListQuery
	if err := bindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.complaints.List(c.Request.Context(), p, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get complaint
// @Tags Complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) Get(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	item, err := h.complaints.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary File a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body dto.CreateComplaintRequest true "Complaint"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /complaints [post]
func (h *ComplaintHandler) Create(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var req dto.CreateComplaintRequest
	if err := bindStrictJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.complaints.Create(c.Request.Context(), p, req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateStatus godoc
// @Summary Move a complaint through its lifecycle
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body dto.StatusUpdateRequest true "Status change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /complaints [patch]
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var req dto.StatusUpdateRequest
	if err := bindStrictJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.complaints.UpdateStatus(c.Request.Context(), p, req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}
