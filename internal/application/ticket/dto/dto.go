package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
)

type PartyDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TicketDTO struct {
	ID                uint       `json:"id"`
	Subject           string     `json:"subject"`
	Description       string     `json:"description"`
	EquipmentBrand    string     `json:"equipment_brand"`
	EquipmentModel    string     `json:"equipment_model"`
	SerialNumber      string     `json:"serial_number"`
	EquipmentCategory string     `json:"equipment_category"`
	Area              string     `json:"area"`
	Status            string     `json:"status"`
	CustomerID        uint       `json:"customer_id"`
	SupportID         *uint      `json:"support_id"`
	UserID            *uint      `json:"user_id"`
	Customer          *PartyDTO  `json:"customer,omitempty"`
	Support           *PartyDTO  `json:"support,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	ClosedAt          *time.Time `json:"closed_at"`
}

type FileDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

type CommentDTO struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	AuthorName  string    `json:"author_name"`
	Body        string    `json:"body"`
	BodyHTML    string    `json:"body_html"`
	Attachments []FileDTO `json:"attachments"`
	CreatedAt   time.Time `json:"created_at"`
}

type ActivityDTO struct {
	ID        uint           `json:"id"`
	UserID    *uint          `json:"user_id"`
	Kind      string         `json:"kind"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

type TicketDetailDTO struct {
	TicketDTO
	Documents  []FileDTO     `json:"documents"`
	Comments   []CommentDTO  `json:"comments"`
	Activities []ActivityDTO `json:"activities"`
}

type CountDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type SupportLoadDTO struct {
	SupportID uint   `json:"support_id"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

type TicketStatsDTO struct {
	Total      int64            `json:"total"`
	Unassigned int64            `json:"unassigned"`
	ByStatus   []CountDTO       `json:"by_status"`
	BySubject  []CountDTO       `json:"by_subject"`
	BySupport  []SupportLoadDTO `json:"by_support,omitempty"`
	Recent     []TicketDTO      `json:"recent"`
}

func ToPartyFromCustomer(c *customer.Customer) *PartyDTO {
	if c == nil {
		return nil
	}
	return &PartyDTO{ID: c.ID(), Name: c.Name(), Email: c.Email().String()}
}

func ToPartyFromSupport(s *support.Support) *PartyDTO {
	if s == nil {
		return nil
	}
	return &PartyDTO{ID: s.ID(), Name: s.Name(), Email: s.Email().String()}
}

func ToTicketDTO(t *ticket.Ticket) TicketDTO {
	eq := t.Equipment()
	return TicketDTO{
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

// ToTicketDTOs converts tickets and fills customer/support from the lookup maps.
func ToTicketDTOs(tickets []*ticket.Ticket, customers map[uint]*customer.Customer, supports map[uint]*support.Support) []TicketDTO {
	out := make([]TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		d := ToTicketDTO(t)
		d.Customer = ToPartyFromCustomer(customers[t.CustomerID()])
		if sid := t.SupportID(); sid != nil {
			d.Support = ToPartyFromSupport(supports[*sid])
		}
		out = append(out, d)
	}
	return out
}

func ToDocumentDTO(d *ticket.Document) FileDTO {
	f := d.File()
	return FileDTO{
		ID:          d.ID(),
		Name:        f.OriginalName,
		ContentType: f.ContentType,
		Size:        f.Size,
		CreatedAt:   d.CreatedAt(),
	}
}

func ToAttachmentDTO(a *ticket.CommentAttachment) FileDTO {
	f := a.File()
	return FileDTO{
		ID:          a.ID(),
		Name:        f.OriginalName,
		ContentType: f.ContentType,
		Size:        f.Size,
		CreatedAt:   a.CreatedAt(),
	}
}

func ToActivityDTO(a *ticket.Activity) ActivityDTO {
	return ActivityDTO{
		ID:        a.ID(),
		UserID:    a.UserID(),
		Kind:      a.Kind().String(),
		Payload:   a.Payload(),
		CreatedAt: a.CreatedAt(),
	}
}
