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

type attendanceService interface {
	List(ctx context.Context, p *models.Principal, q dto.AttendanceListQuery) ([]models.Attendance, *models.Pagination, error)
	Mark(ctx context.Context, p *models.Principal, req dto.MarkAttendanceRequest, meta service.RequestMeta) (*dto.MarkAttendanceResult, error)
}

// AttendanceHandler exposes roll-call endpoints.
type AttendanceHandler struct {
	attendance attendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// List godoc
// @Summary List attendance
// @Description Defaults to today when no date window is given.
// @Tags Attendance
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param studentId query string false "Student filter"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var q dto.AttendanceListQuery
	if err := bindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.attendance.List(c.Request.Context(), p, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Mark godoc
// @Summary Mark attendance
// @Description Records one entry per student per day. Students already marked are reported as skipped.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.MarkAttendanceRequest true "Roll call"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var req dto.MarkAttendanceRequest
	if err := bindStrictJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.attendance.Mark(c.Request.Context(), p, req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}
