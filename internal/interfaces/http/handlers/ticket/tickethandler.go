package ticket

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC  usecases.CreateTicketExecutor
	updateTicketUC  usecases.UpdateTicketExecutor
	deleteTicketUC  usecases.DeleteTicketExecutor
	getTicketUC     usecases.GetTicketExecutor
	listTicketsUC   usecases.ListTicketsExecutor
	changeStatusUC  usecases.ChangeStatusExecutor
	assignTicketUC  usecases.AssignTicketExecutor
	addCommentUC    usecases.AddCommentExecutor
	getTicketFileUC usecases.GetTicketFileExecutor
	logger          logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	assignTicketUC usecases.AssignTicketExecutor,
	addCommentUC usecases.AddCommentExecutor,
	getTicketFileUC usecases.GetTicketFileExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:  createTicketUC,
		updateTicketUC:  updateTicketUC,
		deleteTicketUC:  deleteTicketUC,
		getTicketUC:     getTicketUC,
		listTicketsUC:   listTicketsUC,
		changeStatusUC:  changeStatusUC,
		assignTicketUC:  assignTicketUC,
		addCommentUC:    addCommentUC,
		getTicketFileUC: getTicketFileUC,
		logger:          logger,
	}
}

// ActorFromContext builds the ticket actor from the values set by the auth middleware.
func ActorFromContext(c *gin.Context) usecases.Actor {
	userID, _ := middleware.GetUserID(c)
	return usecases.Actor{
		UserID: userID,
		Email:  middleware.GetUserEmail(c),
		Roles:  middleware.GetUserRoles(c),
	}
}

func language(c *gin.Context) string {
	return c.GetHeader(constants.HeaderAcceptLanguage)
}

// CreateTicket godoc
// @Summary Create ticket
// @Description Open a ticket. Accepts JSON or multipart/form-data with "documents" files.
// @Tags tickets
// @Accept mpfd,json
// @Produce json
// @Security Bearer
// @Param request body CreateTicketRequest true "Ticket data"
// @Success 201 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	documents, err := uploadsFromForm(c, documentsField)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(ActorFromContext(c), documents, language(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket godoc
// @Summary Get ticket
// @Description Ticket detail with documents, comments and activity
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDetailDTO}
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Actor:    ActorFromContext(c),
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets godoc
// @Summary List tickets
// @Description Paginated ticket list filtered by status, subject, customer and support
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "open, in_progress or closed"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	var req ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.listTicketsUC.Execute(c.Request.Context(), req.ToQuery(ActorFromContext(c), p.Page, p.PageSize))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// UpdateTicket godoc
// @Summary Update ticket
// @Description Edit ticket fields and append documents
// @Tags tickets
// @Accept mpfd,json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body UpdateTicketRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	if isMultipart(c) {
		req.SupportID, err = supportIDFromForm(c)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	documents, err := uploadsFromForm(c, documentsField)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), req.ToCommand(ActorFromContext(c), ticketID, documents, language(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// DeleteTicket godoc
// @Summary Delete ticket
// @Description Delete a ticket with its documents and comments
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 204
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		Actor:    ActorFromContext(c),
		TicketID: ticketID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ChangeStatus godoc
// @Summary Change ticket status
// @Description Move a ticket between open, in_progress and closed
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body ChangeStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/status [patch]
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		Actor:    ActorFromContext(c),
		TicketID: ticketID,
		Status:   req.Status,
		Language: language(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated successfully", result)
}

// AssignTicket godoc
// @Summary Assign ticket
// @Description Assign a support technician; null unassigns
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AssignTicketRequest true "Support technician"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/assign [patch]
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.assignTicketUC.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		Actor:     ActorFromContext(c),
		TicketID:  ticketID,
		SupportID: req.SupportID,
		Language:  language(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", result)
}

// AddComment godoc
// @Summary Add comment
// @Description Add a markdown comment with optional attachments
// @Tags tickets
// @Accept mpfd,json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AddCommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse{data=dto.CommentDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	attachments, err := uploadsFromForm(c, attachmentsField)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		Actor:       ActorFromContext(c),
		TicketID:    ticketID,
		Body:        req.Body,
		Attachments: attachments,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// DownloadDocument handles GET /tickets/:id/documents/:document_id
func (h *TicketHandler) DownloadDocument(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	documentID, err := parseUintParam(c, "document_id", "document")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.serveFile(c, usecases.GetTicketFileQuery{
		Actor:      ActorFromContext(c),
		TicketID:   ticketID,
		DocumentID: documentID,
	})
}

// DownloadCommentAttachment handles GET /tickets/:id/comments/:comment_id/attachments/:attachment_id
func (h *TicketHandler) DownloadCommentAttachment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	commentID, err := parseUintParam(c, "comment_id", "comment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	attachmentID, err := parseUintParam(c, "attachment_id", "attachment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.serveFile(c, usecases.GetTicketFileQuery{
		Actor:        ActorFromContext(c),
		TicketID:     ticketID,
		CommentID:    commentID,
		AttachmentID: attachmentID,
	})
}

func (h *TicketHandler) serveFile(c *gin.Context, query usecases.GetTicketFileQuery) {
	file, err := h.getTicketFileUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer file.Reader.Close()

	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, file.Reader, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}),
	})
}
