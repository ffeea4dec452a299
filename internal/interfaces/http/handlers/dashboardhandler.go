package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ticketusecases "github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	tickethandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// DashboardHandler serves the reporting view and the CSV export.
type DashboardHandler struct {
	statsUseCase  ticketStatsUseCase
	exportUseCase exportTicketsUseCase
	logger        logger.Interface
}

func NewDashboardHandler(statsUC ticketStatsUseCase, exportUC exportTicketsUseCase, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		statsUseCase:  statsUC,
		exportUseCase: exportUC,
		logger:        logger,
	}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	result, err := h.statsUseCase.Execute(c.Request.Context(), ticketusecases.GetTicketStatsQuery{
		Actor:          tickethandlers.ActorFromContext(c),
		AcceptLanguage: c.GetHeader(constants.HeaderAcceptLanguage),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ExportTickets handles GET and POST /dashboard/export-tickets. GET takes
// ?ids=1,2,3 or ?all=true; POST takes {"ids":[...]} or {"all":true}.
func (h *DashboardHandler) ExportTickets(c *gin.Context) {
	var req ExportTicketsRequest
	if c.Request.Method == http.MethodPost {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.ValidationError(err))
			return
		}
	} else {
		ids, err := parseIDList(c.Query("ids"))
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		req.IDs = ids
		req.All = c.Query("all") == "true" || c.Query("all") == "1"
	}

	result, err := h.exportUseCase.Execute(c.Request.Context(), ticketusecases.ExportTicketsCommand{
		Actor:          tickethandlers.ActorFromContext(c),
		IDs:            req.IDs,
		All:            req.All,
		AcceptLanguage: c.GetHeader(constants.HeaderAcceptLanguage),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.AttachmentResponse(c, result.Filename, result.ContentType, result.Data)
}
