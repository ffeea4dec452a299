package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

const (
	maxDescriptionLength = 5000
	maxEquipmentLength   = 255
)

// Equipment describes the device the ticket is about. All fields are optional.
type Equipment struct {
	Brand        string
	Model        string
	SerialNumber string
	Category     string
	Area         string
}

func (e Equipment) normalized() Equipment {
	return Equipment{
		Brand:        strings.TrimSpace(e.Brand),
		Model:        strings.TrimSpace(e.Model),
		SerialNumber: strings.TrimSpace(e.SerialNumber),
		Category:     strings.TrimSpace(e.Category),
		Area:         strings.TrimSpace(e.Area),
	}
}

func (e Equipment) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"equipment brand", e.Brand},
		{"equipment model", e.Model},
		{"serial number", e.SerialNumber},
		{"equipment category", e.Category},
		{"area", e.Area},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > maxEquipmentLength {
			return fmt.Errorf("%s exceeds maximum length of %d characters", f.name, maxEquipmentLength)
		}
	}
	return nil
}

type Ticket struct {
	id          uint
	subject     vo.Subject
	description string
	equipment   Equipment
	status      vo.TicketStatus
	customerID  uint
	supportID   *uint
	userID      *uint
	createdAt   time.Time
	updatedAt   time.Time
	closedAt    *time.Time
}

// NewTicket creates an open ticket for customerID. userID is the creating
// user and may be nil for tickets entered on someone's behalf by the seeder.
func NewTicket(
	subject vo.Subject,
	description string,
	equipment Equipment,
	customerID uint,
	userID *uint,
) (*Ticket, error) {
	description = strings.TrimSpace(description)
	if err := validateDetails(subject, description, equipment); err != nil {
		return nil, err
	}
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		subject:     subject,
		description: description,
		equipment:   equipment.normalized(),
		status:      vo.StatusOpen,
		customerID:  customerID,
		userID:      userID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	subject vo.Subject,
	description string,
	equipment Equipment,
	status vo.TicketStatus,
	customerID uint,
	supportID *uint,
	userID *uint,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !subject.IsValid() {
		return nil, fmt.Errorf("invalid subject")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Ticket{
		id:          id,
		subject:     subject,
		description: description,
		equipment:   equipment,
		status:      status,
		customerID:  customerID,
		supportID:   supportID,
		userID:      userID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		closedAt:    closedAt,
	}, nil
}

func validateDetails(subject vo.Subject, description string, equipment Equipment) error {
	if !subject.IsValid() {
		return fmt.Errorf("invalid subject")
	}
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	return equipment.normalized().validate()
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Subject() vo.Subject {
	return t.subject
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Equipment() Equipment {
	return t.equipment
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CustomerID() uint {
	return t.customerID
}

func (t *Ticket) SupportID() *uint {
	return t.supportID
}

func (t *Ticket) UserID() *uint {
	return t.userID
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// UpdateDetails replaces the descriptive fields and reports whether anything changed.
func (t *Ticket) UpdateDetails(subject vo.Subject, description string, equipment Equipment) (bool, error) {
	description = strings.TrimSpace(description)
	if err := validateDetails(subject, description, equipment); err != nil {
		return false, err
	}

	equipment = equipment.normalized()
	if t.subject == subject && t.description == description && t.equipment == equipment {
		return false, nil
	}

	t.subject = subject
	t.description = description
	t.equipment = equipment
	t.updatedAt = biztime.NowUTC()
	return true, nil
}

// ChangeStatus moves the ticket to any valid status. Closing stamps closedAt,
// leaving closed clears it. It reports whether the status actually changed.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) (bool, error) {
	if !newStatus.IsValid() {
		return false, fmt.Errorf("invalid status: %s", newStatus)
	}

	if t.status == newStatus {
		return false, nil
	}

	now := biztime.NowUTC()
	switch {
	case newStatus.IsClosed() && t.closedAt == nil:
		t.closedAt = &now
	case !newStatus.IsClosed():
		t.closedAt = nil
	}

	t.status = newStatus
	t.updatedAt = now
	return true, nil
}

// AssignSupport sets or clears (nil) the technician and reports whether it changed.
func (t *Ticket) AssignSupport(supportID *uint) (bool, error) {
	if supportID != nil && *supportID == 0 {
		return false, fmt.Errorf("support ID cannot be zero")
	}

	if sameID(t.supportID, supportID) {
		return false, nil
	}

	if supportID == nil {
		t.supportID = nil
	} else {
		id := *supportID
		t.supportID = &id
	}
	t.updatedAt = biztime.NowUTC()
	return true, nil
}

// IsAssignedTo reports whether supportID is the ticket's technician.
func (t *Ticket) IsAssignedTo(supportID uint) bool {
	return t.supportID != nil && *t.supportID == supportID
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
