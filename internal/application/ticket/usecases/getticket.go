package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	Actor    Actor
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	documentRepo ticket.DocumentRepository
	commentRepo  ticket.CommentRepository
	activityRepo ticket.ActivityRepository
	customerRepo customer.Repository
	supportRepo  support.Repository
	userRepo     user.Repository
	resolver     *ScopeResolver
	renderer     MarkdownRenderer
	logger       logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	documentRepo ticket.DocumentRepository,
	commentRepo ticket.CommentRepository,
	activityRepo ticket.ActivityRepository,
	customerRepo customer.Repository,
	supportRepo support.Repository,
	userRepo user.Repository,
	resolver *ScopeResolver,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:   ticketRepo,
		documentRepo: documentRepo,
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		customerRepo: customerRepo,
		supportRepo:  supportRepo,
		userRepo:     userRepo,
		resolver:     resolver,
		renderer:     renderer,
		logger:       logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDetailDTO, error) {
	t, _, err := loadScoped(ctx, uc.ticketRepo, uc.resolver, query.Actor, query.TicketID)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}

	detail, err := uc.buildDetail(ctx, t)
	if err != nil {
		uc.logger.Errorw("failed to load ticket details", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	return detail, nil
}

func (uc *GetTicketUseCase) buildDetail(ctx context.Context, t *ticket.Ticket) (*dto.TicketDetailDTO, error) {
	customers, supports, err := partyLookup{uc.customerRepo, uc.supportRepo}.load(ctx, []*ticket.Ticket{t})
	if err != nil {
		return nil, err
	}

	docs, err := uc.documentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		return nil, err
	}
	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		return nil, err
	}
	activities, err := uc.activityRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		return nil, err
	}

	authors, err := uc.authorNames(ctx, comments)
	if err != nil {
		return nil, err
	}

	detail := &dto.TicketDetailDTO{
		TicketDTO:  dto.ToTicketDTOs([]*ticket.Ticket{t}, customers, supports)[0],
		Documents:  make([]dto.FileDTO, 0, len(docs)),
		Comments:   make([]dto.CommentDTO, 0, len(comments)),
		Activities: make([]dto.ActivityDTO, 0, len(activities)),
	}
	for _, d := range docs {
		detail.Documents = append(detail.Documents, dto.ToDocumentDTO(d))
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, toCommentDTO(c, authors[c.UserID()], uc.renderer, uc.logger))
	}
	for _, a := range activities {
		detail.Activities = append(detail.Activities, dto.ToActivityDTO(a))
	}
	return detail, nil
}

func (uc *GetTicketUseCase) authorNames(ctx context.Context, comments []*ticket.Comment) (map[uint]string, error) {
	names := make(map[uint]string)
	if len(comments) == 0 {
		return names, nil
	}

	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		if _, ok := names[c.UserID()]; !ok {
			names[c.UserID()] = ""
			ids = append(ids, c.UserID())
		}
	}

	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID()] = u.Name()
	}
	return names, nil
}
