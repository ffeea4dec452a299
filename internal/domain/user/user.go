package user

import (
	"fmt"
	"strings"
	"time"

	sharedvo "github.com/orris-inc/helpdesk/internal/domain/shared/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// User is an account that can log in. Roles live in the permission
// aggregate; the customer/support link is resolved by email.
type User struct {
	id           uint
	name         string
	email        sharedvo.Email
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	if len(name) > 255 {
		return "", fmt.Errorf("name exceeds maximum length of 255 characters")
	}
	return name, nil
}

// NewUser creates a user without a password; call SetPassword before saving.
func NewUser(name, email string) (*User, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	emailVO, err := sharedvo.NewEmail(email)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &User{
		name:      name,
		email:     emailVO,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(id uint, name, email, passwordHash string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	emailVO, err := sharedvo.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}

	return &User{
		id:           id,
		name:         name,
		email:        emailVO,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() sharedvo.Email {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// UpdateProfile changes name and email.
func (u *User) UpdateProfile(name, email string) error {
	name, err := validateName(name)
	if err != nil {
		return err
	}
	emailVO, err := sharedvo.NewEmail(email)
	if err != nil {
		return err
	}

	u.name = name
	u.email = emailVO
	u.updatedAt = biztime.NowUTC()
	return nil
}
