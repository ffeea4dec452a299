package permission

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/orris-inc/helpdesk/internal/domain/permission/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// Permission is a capability expressed as resource:action.
type Permission struct {
	id          uint
	resource    vo.Resource
	action      vo.Action
	description string
	createdAt   time.Time
}

func NewPermission(resource vo.Resource, action vo.Action, description string) (*Permission, error) {
	if resource == "" {
		return nil, fmt.Errorf("resource is required")
	}
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}

	return &Permission{
		resource:    resource,
		action:      action,
		description: description,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructPermission(id uint, resource vo.Resource, action vo.Action, description string, createdAt time.Time) (*Permission, error) {
	if id == 0 {
		return nil, fmt.Errorf("permission ID cannot be zero")
	}

	return &Permission{
		id:          id,
		resource:    resource,
		action:      action,
		description: description,
		createdAt:   createdAt,
	}, nil
}

// ParseCode splits "resource:action" into validated parts.
func ParseCode(code string) (vo.Resource, vo.Action, error) {
	resourcePart, actionPart, ok := strings.Cut(code, ":")
	if !ok {
		return "", "", fmt.Errorf("invalid permission code %q, expected resource:action", code)
	}
	resource, err := vo.NewResource(resourcePart)
	if err != nil {
		return "", "", err
	}
	action, err := vo.NewAction(actionPart)
	if err != nil {
		return "", "", err
	}
	return resource, action, nil
}

func (p *Permission) ID() uint {
	return p.id
}

func (p *Permission) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Permission) Resource() vo.Resource {
	return p.resource
}

func (p *Permission) Action() vo.Action {
	return p.action
}

func (p *Permission) Description() string {
	return p.description
}

func (p *Permission) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Permission) Code() string {
	return fmt.Sprintf("%s:%s", p.resource, p.action)
}
