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

type blockService interface {
	List(ctx context.Context, p *models.Principal) ([]models.Block, error)
	Create(ctx context.Context, p *models.Principal, req dto.CreateBlockRequest, meta service.RequestMeta) (*models.Block, error)
}

// BlockHandler exposes residential block endpoints.
type BlockHandler struct {
	blocks blockService
}

// NewBlockHandler constructs BlockHandler.
func NewBlockHandler(blocks blockService) *BlockHandler {
	return &BlockHandler{blocks: blocks}
}

// List godoc
// @Summary List blocks
// @Tags Blocks
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /blocks [get]
func (h *BlockHandler) List(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	blocks, err := h.blocks.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks, nil)
}

// Create godoc
// @Summary Create block
// @Tags Blocks
// @Accept json
// @Produce json
// @Param payload body dto.CreateBlockRequest true "Block payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /blocks [post]
func (h *BlockHandler) Create(c *gin.Context) {
	p := principal(c)
	if p == nil {
		return
	}
	var req dto.CreateBlockRequest
	if err := bindStrictJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	block, err := h.blocks.Create(c.Request.Context(), p, req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, block)
}
