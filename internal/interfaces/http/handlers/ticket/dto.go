package ticket

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

const (
	documentsField   = "documents"
	attachmentsField = "attachments"
)

// EquipmentRequest is shared by create and update bodies.
type EquipmentRequest struct {
	EquipmentBrand    string `json:"equipment_brand" form:"equipment_brand" binding:"max=100"`
	EquipmentModel    string `json:"equipment_model" form:"equipment_model" binding:"max=100"`
	SerialNumber      string `json:"serial_number" form:"serial_number" binding:"max=100"`
	EquipmentCategory string `json:"equipment_category" form:"equipment_category" binding:"max=100"`
	Area              string `json:"area" form:"area" binding:"max=100"`
}

func (r EquipmentRequest) toEquipment() ticket.Equipment {
	return ticket.Equipment{
		Brand:        r.EquipmentBrand,
		Model:        r.EquipmentModel,
		SerialNumber: r.SerialNumber,
		Category:     r.EquipmentCategory,
		Area:         r.Area,
	}
}

type CreateTicketRequest struct {
	Subject     string `json:"subject" form:"subject" binding:"required"`
	Description string `json:"description" form:"description" binding:"required,max=5000"`
	EquipmentRequest
	CustomerID *uint `json:"customer_id" form:"customer_id"`
	SupportID  *uint `json:"support_id" form:"support_id"`
}

func (r *CreateTicketRequest) ToCommand(actor usecases.Actor, documents []usecases.FileUpload, language string) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:       actor,
		Subject:     r.Subject,
		Description: r.Description,
		Equipment:   r.toEquipment(),
		CustomerID:  r.CustomerID,
		SupportID:   r.SupportID,
		Documents:   documents,
		Language:    language,
	}
}

// OptionalID records whether a JSON field was sent at all, so an explicit
// null can be told apart from an omitted field.
type OptionalID struct {
	Set   bool
	Value *uint
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

type UpdateTicketRequest struct {
	Subject     string `json:"subject" form:"subject" binding:"required"`
	Description string `json:"description" form:"description" binding:"required,max=5000"`
	EquipmentRequest
	Status    *string    `json:"status" form:"status"`
	SupportID OptionalID `json:"support_id" form:"-"`
}

func (r *UpdateTicketRequest) ToCommand(actor usecases.Actor, ticketID uint, documents []usecases.FileUpload, language string) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Actor:         actor,
		TicketID:      ticketID,
		Subject:       r.Subject,
		Description:   r.Description,
		Equipment:     r.toEquipment(),
		Status:        r.Status,
		UpdateSupport: r.SupportID.Set,
		SupportID:     r.SupportID.Value,
		Documents:     documents,
		Language:      language,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress closed"`
}

type AssignTicketRequest struct {
	SupportID *uint `json:"support_id"`
}

type AddCommentRequest struct {
	Body string `json:"body" form:"body" binding:"required,max=10000"`
}

type ListTicketsRequest struct {
	Status     string `form:"status"`
	Subject    string `form:"subject"`
	CustomerID *uint  `form:"customer_id"`
	SupportID  *uint  `form:"support_id"`
	Search     string `form:"search" binding:"max=100"`
}

func (r *ListTicketsRequest) ToQuery(actor usecases.Actor, page, pageSize int) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Actor:      actor,
		Status:     r.Status,
		Subject:    r.Subject,
		CustomerID: r.CustomerID,
		SupportID:  r.SupportID,
		Search:     strings.TrimSpace(r.Search),
		Page:       page,
		PageSize:   pageSize,
	}
}

type ExportTicketsRequest struct {
	IDs []uint `json:"ids"`
	All bool   `json:"all"`
}

func parseUintParam(c *gin.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid " + label + " ID")
	}
	return uint(id), nil
}

func parseTicketID(c *gin.Context) (uint, error) {
	return parseUintParam(c, "id", "ticket")
}

// supportIDFromForm reads support_id from a multipart body. An empty value
// clears the assignment.
func supportIDFromForm(c *gin.Context) (OptionalID, error) {
	raw, ok := c.GetPostForm("support_id")
	if !ok {
		return OptionalID{}, nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return OptionalID{Set: true}, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return OptionalID{}, errors.NewFieldValidationError(map[string]string{
			"support_id": "support_id must be a positive integer",
		})
	}
	v := uint(id)
	return OptionalID{Set: true, Value: &v}, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm)
}

// uploadsFromForm converts the files posted under field into uploads.
func uploadsFromForm(c *gin.Context, field string) ([]usecases.FileUpload, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid multipart body", err.Error())
	}
	headers := form.File[field]
	if len(headers) == 0 {
		headers = form.File[field+"[]"]
	}
	uploads := make([]usecases.FileUpload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, toUpload(fh))
	}
	return uploads, nil
}

func toUpload(fh *multipart.FileHeader) usecases.FileUpload {
	return usecases.FileUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
