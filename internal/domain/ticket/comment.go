package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

const maxCommentLength = 5000

type Comment struct {
	id          uint
	ticketID    uint
	userID      uint
	body        string
	attachments []*CommentAttachment
	createdAt   time.Time
}

func NewComment(ticketID uint, userID uint, body string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	body = strings.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("comment body cannot be empty")
	}
	if utf8.RuneCountInString(body) > maxCommentLength {
		return nil, fmt.Errorf("comment body exceeds maximum length of %d characters", maxCommentLength)
	}

	return &Comment{
		ticketID:    ticketID,
		userID:      userID,
		body:        body,
		attachments: []*CommentAttachment{},
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructComment(
	id uint,
	ticketID uint,
	userID uint,
	body string,
	attachments []*CommentAttachment,
	createdAt time.Time,
) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if attachments == nil {
		attachments = []*CommentAttachment{}
	}

	return &Comment{
		id:          id,
		ticketID:    ticketID,
		userID:      userID,
		body:        body,
		attachments: attachments,
		createdAt:   createdAt,
	}, nil
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) UserID() uint {
	return c.userID
}

func (c *Comment) Body() string {
	return c.body
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) Attachments() []*CommentAttachment {
	out := make([]*CommentAttachment, len(c.attachments))
	copy(out, c.attachments)
	return out
}

// SetID assigns the persisted ID and propagates it to pending attachments.
func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	for _, a := range c.attachments {
		a.commentID = id
	}
	return nil
}

// Attach adds a file to the comment.
func (c *Comment) Attach(file StoredFile) error {
	if err := file.validate(); err != nil {
		return err
	}
	c.attachments = append(c.attachments, &CommentAttachment{
		commentID: c.id,
		file:      file,
		createdAt: biztime.NowUTC(),
	})
	return nil
}

type CommentAttachment struct {
	id        uint
	commentID uint
	file      StoredFile
	createdAt time.Time
}

func ReconstructCommentAttachment(id, commentID uint, file StoredFile, createdAt time.Time) *CommentAttachment {
	return &CommentAttachment{
		id:        id,
		commentID: commentID,
		file:      file,
		createdAt: createdAt,
	}
}

func (a *CommentAttachment) ID() uint {
	return a.id
}

func (a *CommentAttachment) CommentID() uint {
	return a.commentID
}

func (a *CommentAttachment) File() StoredFile {
	return a.file
}

func (a *CommentAttachment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *CommentAttachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
