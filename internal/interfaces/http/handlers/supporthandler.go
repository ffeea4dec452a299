package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/support"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type SupportHandler struct {
	service supportService
	logger  logger.Interface
}

func NewSupportHandler(service supportService, log logger.Interface) *SupportHandler {
	return &SupportHandler{service: service, logger: log}
}

// List handles GET /supports. all=true returns every technician on one page.
func (h *SupportHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.service.List(c.Request.Context(), support.ListQuery{
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     p.Page,
		PageSize: p.PageSize,
		All:      c.Query("all") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Supports, result.Total, result.Page, result.PageSize)
}

// Get handles GET /supports/:id
func (h *SupportHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "support")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Create handles POST /supports
func (h *SupportHandler) Create(c *gin.Context) {
	var req SupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.service.Create(c.Request.Context(), req.toCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Support created successfully")
}

// Update handles PUT /supports/:id
func (h *SupportHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "support")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req.toCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Support updated successfully", result)
}

// Delete handles DELETE /supports/:id
func (h *SupportHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "support")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
