package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

type TicketModel struct {
	ID                uint   `gorm:"primaryKey"`
	Subject           string `gorm:"size:50;not null;index"`
	Description       string `gorm:"type:text;not null"`
	EquipmentBrand    string `gorm:"size:255"`
	EquipmentModel    string `gorm:"size:255"`
	SerialNumber      string `gorm:"size:255"`
	EquipmentCategory string `gorm:"size:255"`
	Area              string `gorm:"size:255"`
	Status            string `gorm:"size:20;not null;index"`
	CustomerID        uint   `gorm:"not null;index"`
	SupportID         *uint  `gorm:"index"`
	UserID            *uint  `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ClosedAt          *time.Time

	// Note: No foreign key constraints or associations.
	// Relationships are enforced by the application layer.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type TicketDocumentModel struct {
	ID           uint   `gorm:"primaryKey"`
	TicketID     uint   `gorm:"not null;index"`
	OriginalName string `gorm:"size:255;not null"`
	StorageKey   string `gorm:"size:500;not null"`
	ContentType  string `gorm:"size:255"`
	Size         int64  `gorm:"not null;default:0"`
	UploadedBy   *uint
	CreatedAt    time.Time
}

func (TicketDocumentModel) TableName() string {
	return constants.TableTicketDocuments
}

type TicketCommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (TicketCommentModel) TableName() string {
	return constants.TableTicketComments
}

type TicketCommentAttachmentModel struct {
	ID           uint   `gorm:"primaryKey"`
	CommentID    uint   `gorm:"not null;index"`
	OriginalName string `gorm:"size:255;not null"`
	StorageKey   string `gorm:"size:500;not null"`
	ContentType  string `gorm:"size:255"`
	Size         int64  `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (TicketCommentAttachmentModel) TableName() string {
	return constants.TableTicketCommentAttachments
}

// TicketActivityModel is one audit trail entry. Payload shape depends on Kind.
type TicketActivityModel struct {
	ID        uint              `gorm:"primaryKey"`
	TicketID  uint              `gorm:"not null;index"`
	UserID    *uint             `gorm:"index"`
	Kind      string            `gorm:"size:30;not null"`
	Payload   datatypes.JSONMap `gorm:"type:json"`
	CreatedAt time.Time         `gorm:"index"`
}

func (TicketActivityModel) TableName() string {
	return constants.TableTicketActivities
}
