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

type leaveService interface {
	List(ctx context.Context, p *models.Principal, q dto.LeaveListQuery) ([]models.LeaveRequest, *models.Pagination, error)
	Get(ctx context.Context, p *models.Principal, id string) (*models.LeaveRequest, error)
	Create(ctx context.Context, p *models.Principal, req dto.CreateLeaveRequest, meta service.RequestMeta) (*models.LeaveRequest, error)
	UpdateStatus(ctx context.Context, p *models.Principal, req dto.StatusUpdateRequest, meta service.RequestMeta) (*models.LeaveRequest, error)
}

// LeaveHandler exposes leave request endpoints.
type LeaveHandler struct {
	leaves leaveService
}

// NewLeaveHandler constructs LeaveHandler.
func NewLeaveHandler(leaves leaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

// List godoc
// @Summary List leave requests
// @Tags LeaveRequests
// @Produce json
// @Param status query string false "PENDING, APPROVED, REJECTED or CANCELLED"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /leave-requests [get]
func (h *LeaveHandler) List(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var q dto.LeaveListQuery
	if err := bindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.leaves.List(c.Request.Context(), p, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get leave request
// @Tags LeaveRequests
// @Produce json
// @Param id path string true "Leave request ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /leave-requests/{id} [get]
func (h *LeaveHandler) Get(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	item, err := h.leaves.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Request leave
// @Tags LeaveRequests
// @Accept json
// @Produce json
// @Param payload body dto.CreateLeaveRequest true "Leave request"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /leave-requests [post]
func (h *LeaveHandler) Create(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var req dto.CreateLeaveRequest
	if err := bindStrictJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.leaves.Create(c.Request.Context(), p, req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateStatus godoc
// @Summary Decide or cancel a leave request
// @Tags LeaveRequests
// @Accept json
// @Produce json
// @Param payload body dto.StatusUpdateRequest true "Status change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /leave-requests [patch]
func (h *LeaveHandler) UpdateStatus(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var req dto.StatusUpdateRequest
	if err := bindStrictJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.leaves.UpdateStatus(c.Request.Context(), p, req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}
