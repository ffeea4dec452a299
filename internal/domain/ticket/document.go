package ticket

import (
	"fmt"
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// StoredFile describes an uploaded file already written to storage.
type StoredFile struct {
	OriginalName string
	StorageKey   string
	ContentType  string
	Size         int64
}

func (f StoredFile) validate() error {
	if f.OriginalName == "" {
		return fmt.Errorf("file name is required")
	}
	if f.StorageKey == "" {
		return fmt.Errorf("storage key is required")
	}
	if f.Size < 0 {
		return fmt.Errorf("file size cannot be negative")
	}
	return nil
}

// Document is a file attached to the ticket itself at create or edit time.
type Document struct {
	id         uint
	ticketID   uint
	file       StoredFile
	uploadedBy *uint
	createdAt  time.Time
}

func NewDocument(ticketID uint, file StoredFile, uploadedBy *uint) (*Document, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if err := file.validate(); err != nil {
		return nil, err
	}

	return &Document{
		ticketID:   ticketID,
		file:       file,
		uploadedBy: uploadedBy,
		createdAt:  biztime.NowUTC(),
	}, nil
}

func ReconstructDocument(id, ticketID uint, file StoredFile, uploadedBy *uint, createdAt time.Time) *Document {
	return &Document{
		id:         id,
		ticketID:   ticketID,
		file:       file,
		uploadedBy: uploadedBy,
		createdAt:  createdAt,
	}
}

func (d *Document) ID() uint {
	return d.id
}

func (d *Document) TicketID() uint {
	return d.ticketID
}

func (d *Document) File() StoredFile {
	return d.file
}

func (d *Document) UploadedBy() *uint {
	return d.uploadedBy
}

func (d *Document) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Document) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("document ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("document ID cannot be zero")
	}
	d.id = id
	return nil
}
