package customer

import (
	"fmt"
	"strings"
	"time"

	sharedvo "github.com/orris-inc/helpdesk/internal/domain/shared/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

const (
	maxNameLength    = 255
	maxPhoneLength   = 50
	maxAddressLength = 500
)

// Customer is the organisation or person a ticket is raised for. A user
// account is linked to a customer when both share the same email.
type Customer struct {
	id        uint
	name      string
	company   string
	email     sharedvo.Email
	phone     string
	address   string
	createdAt time.Time
	updatedAt time.Time
}

// Profile carries the editable customer fields.
type Profile struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Address string
}

func (p Profile) normalize() (Profile, sharedvo.Email, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Company = strings.TrimSpace(p.Company)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)

	if p.Name == "" {
		return p, sharedvo.Email{}, fmt.Errorf("name is required")
	}
	if len(p.Name) > maxNameLength {
		return p, sharedvo.Email{}, fmt.Errorf("name exceeds maximum length of %d characters", maxNameLength)
	}
	if len(p.Company) > maxNameLength {
		return p, sharedvo.Email{}, fmt.Errorf("company exceeds maximum length of %d characters", maxNameLength)
	}
	if len(p.Phone) > maxPhoneLength {
		return p, sharedvo.Email{}, fmt.Errorf("phone exceeds maximum length of %d characters", maxPhoneLength)
	}
	if len(p.Address) > maxAddressLength {
		return p, sharedvo.Email{}, fmt.Errorf("address exceeds maximum length of %d characters", maxAddressLength)
	}

	email, err := sharedvo.NewEmail(p.Email)
	if err != nil {
		return p, sharedvo.Email{}, err
	}
	p.Email = email.String()
	return p, email, nil
}

func NewCustomer(profile Profile) (*Customer, error) {
	p, email, err := profile.normalize()
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Customer{
		name:      p.Name,
		company:   p.Company,
		email:     email,
		phone:     p.Phone,
		address:   p.Address,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructCustomer(id uint, profile Profile, createdAt, updatedAt time.Time) (*Customer, error) {
	if id == 0 {
		return nil, fmt.Errorf("customer ID cannot be zero")
	}
	email, err := sharedvo.NewEmail(profile.Email)
	if err != nil {
		return nil, fmt.Errorf("customer %d: %w", id, err)
	}

	return &Customer{
		id:        id,
		name:      profile.Name,
		company:   profile.Company,
		email:     email,
		phone:     profile.Phone,
		address:   profile.Address,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (c *Customer) ID() uint {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Company() string {
	return c.company
}

func (c *Customer) Email() sharedvo.Email {
	return c.email
}

func (c *Customer) Phone() string {
	return c.phone
}

func (c *Customer) Address() string {
	return c.address
}

func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Customer) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Customer) Profile() Profile {
	return Profile{
		Name:    c.name,
		Company: c.company,
		Email:   c.email.String(),
		Phone:   c.phone,
		Address: c.address,
	}
}

func (c *Customer) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("customer ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("customer ID cannot be zero")
	}
	c.id = id
	return nil
}

// Update replaces the profile. The email may change; uniqueness is checked by
// the caller against the repository.
func (c *Customer) Update(profile Profile) error {
	p, email, err := profile.normalize()
	if err != nil {
		return err
	}

	c.name = p.Name
	c.company = p.Company
	c.email = email
	c.phone = p.Phone
	c.address = p.Address
	c.updatedAt = biztime.NowUTC()
	return nil
}
