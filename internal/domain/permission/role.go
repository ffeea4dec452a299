package permission

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

var slugRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

type Role struct {
	id          uint
	name        string
	slug        string
	description string
	isSystem    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRole(name, slug, description string) (*Role, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)

	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if slug == "" {
		return nil, fmt.Errorf("role slug is required")
	}
	if len(name) > 50 {
		return nil, fmt.Errorf("role name too long (max 50 characters)")
	}
	if len(slug) > 50 {
		return nil, fmt.Errorf("role slug too long (max 50 characters)")
	}
	if !slugRegex.MatchString(slug) {
		return nil, fmt.Errorf("role slug may only contain lowercase letters, digits, '-' and '_'")
	}

	now := biztime.NowUTC()
	return &Role{
		name:        name,
		slug:        slug,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// NewSystemRole creates a built-in role that cannot be deleted.
func NewSystemRole(name, slug, description string) (*Role, error) {
	r, err := NewRole(name, slug, description)
	if err != nil {
		return nil, err
	}
	r.isSystem = true
	return r, nil
}

func ReconstructRole(id uint, name, slug, description string, isSystem bool, createdAt, updatedAt time.Time) (*Role, error) {
	if id == 0 {
		return nil, fmt.Errorf("role ID cannot be zero")
	}

	return &Role{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		isSystem:    isSystem,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (r *Role) ID() uint {
	return r.id
}

func (r *Role) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("role ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *Role) Name() string {
	return r.name
}

func (r *Role) Slug() string {
	return r.slug
}

func (r *Role) Description() string {
	return r.description
}

func (r *Role) IsSystem() bool {
	return r.isSystem
}

func (r *Role) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Role) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Role) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("role name cannot be empty")
	}
	if len(name) > 50 {
		return fmt.Errorf("role name too long (max 50 characters)")
	}
	r.name = name
	r.updatedAt = biztime.NowUTC()
	return nil
}

func (r *Role) UpdateDescription(description string) {
	r.description = description
	r.updatedAt = biztime.NowUTC()
}

// CheckDeletable returns an error for roles that must be kept.
func (r *Role) CheckDeletable() error {
	if r.isSystem {
		return fmt.Errorf("system role %q cannot be deleted", r.slug)
	}
	return nil
}
