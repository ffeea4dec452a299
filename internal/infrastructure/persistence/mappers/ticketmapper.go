package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket persistence model to a domain entity.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	DocumentToModel(d *ticket.Document) *models.TicketDocumentModel
	DocumentToDomain(model *models.TicketDocumentModel) *ticket.Document

	// CommentToDomain converts a comment and its attachment rows to a domain entity.
	CommentToDomain(model *models.TicketCommentModel, attachments []models.TicketCommentAttachmentModel) (*ticket.Comment, error)
	AttachmentToModel(a *ticket.CommentAttachment) *models.TicketCommentAttachmentModel
	AttachmentToDomain(model *models.TicketCommentAttachmentModel) *ticket.CommentAttachment

	ActivityToModel(a *ticket.Activity) *models.TicketActivityModel
	ActivityToDomain(model *models.TicketActivityModel) *ticket.Activity
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	eq := t.Equipment()
	return &models.TicketModel{
		ID:                t.ID(),
		Subject:           t.Subject().String(),
		Description:       t.Description(),
		EquipmentBrand:    eq.Brand,
		EquipmentModel:    eq.Model,
		SerialNumber:      eq.SerialNumber,
		EquipmentCategory: eq.Category,
		Area:              eq.Area,
		Status:            t.Status().String(),
		CustomerID:        t.CustomerID(),
		SupportID:         t.SupportID(),
		UserID:            t.UserID(),
		CreatedAt:         t.CreatedAt(),
		UpdatedAt:         t.UpdatedAt(),
		ClosedAt:          t.ClosedAt(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	subject, err := vo.NewSubject(model.Subject)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		subject,
		model.Description,
		ticket.Equipment{
			Brand:        model.EquipmentBrand,
			Model:        model.EquipmentModel,
			SerialNumber: model.SerialNumber,
			Category:     model.EquipmentCategory,
			Area:         model.Area,
		},
		status,
		model.CustomerID,
		model.SupportID,
		model.UserID,
		model.CreatedAt,
		model.UpdatedAt,
		model.ClosedAt,
	)
}

func (m *TicketMapperImpl) DocumentToModel(d *ticket.Document) *models.TicketDocumentModel {
	f := d.File()
	return &models.TicketDocumentModel{
		ID:           d.ID(),
		TicketID:     d.TicketID(),
		OriginalName: f.OriginalName,
		StorageKey:   f.StorageKey,
		ContentType:  f.ContentType,
		Size:         f.Size,
		UploadedBy:   d.UploadedBy(),
		CreatedAt:    d.CreatedAt(),
	}
}

func (m *TicketMapperImpl) DocumentToDomain(model *models.TicketDocumentModel) *ticket.Document {
	return ticket.ReconstructDocument(model.ID, model.TicketID, ticket.StoredFile{
		OriginalName: model.OriginalName,
		StorageKey:   model.StorageKey,
		ContentType:  model.ContentType,
		Size:         model.Size,
	}, model.UploadedBy, model.CreatedAt)
}

func (m *TicketMapperImpl) CommentToDomain(model *models.TicketCommentModel, attachments []models.TicketCommentAttachmentModel) (*ticket.Comment, error) {
	converted := make([]*ticket.CommentAttachment, 0, len(attachments))
	for i := range attachments {
		converted = append(converted, m.AttachmentToDomain(&attachments[i]))
	}
	return ticket.ReconstructComment(model.ID, model.TicketID, model.UserID, model.Body, converted, model.CreatedAt)
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.CommentAttachment) *models.TicketCommentAttachmentModel {
	f := a.File()
	return &models.TicketCommentAttachmentModel{
		ID:           a.ID(),
		CommentID:    a.CommentID(),
		OriginalName: f.OriginalName,
		StorageKey:   f.StorageKey,
		ContentType:  f.ContentType,
		Size:         f.Size,
		CreatedAt:    a.CreatedAt(),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.TicketCommentAttachmentModel) *ticket.CommentAttachment {
	return ticket.ReconstructCommentAttachment(model.ID, model.CommentID, ticket.StoredFile{
		OriginalName: model.OriginalName,
		StorageKey:   model.StorageKey,
		ContentType:  model.ContentType,
		Size:         model.Size,
	}, model.CreatedAt)
}

func (m *TicketMapperImpl) ActivityToModel(a *ticket.Activity) *models.TicketActivityModel {
	return &models.TicketActivityModel{
		ID:        a.ID(),
		TicketID:  a.TicketID(),
		UserID:    a.UserID(),
		Kind:      a.Kind().String(),
		Payload:   datatypes.JSONMap(a.Payload()),
		CreatedAt: a.CreatedAt(),
	}
}

func (m *TicketMapperImpl) ActivityToDomain(model *models.TicketActivityModel) *ticket.Activity {
	return ticket.ReconstructActivity(
		model.ID,
		model.TicketID,
		model.UserID,
		ticket.ActivityKind(model.Kind),
		map[string]any(model.Payload),
		model.CreatedAt,
	)
}
