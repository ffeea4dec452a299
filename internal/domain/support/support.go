// Package support models the technicians tickets are assigned to. A support
// record is distinct from the user account that logs in; the two are linked
// by email.
package support

import (
	"fmt"
	"strings"
	"time"

	sharedvo "github.com/orris-inc/helpdesk/internal/domain/shared/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

type Support struct {
	id        uint
	name      string
	email     sharedvo.Email
	phone     string
	specialty string
	createdAt time.Time
	updatedAt time.Time
}

type Profile struct {
	Name      string
	Email     string
	Phone     string
	Specialty string
}

func (p Profile) normalize() (Profile, sharedvo.Email, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Specialty = strings.TrimSpace(p.Specialty)

	switch {
	case p.Name == "":
		return p, sharedvo.Email{}, fmt.Errorf("name is required")
	case len(p.Name) > 255:
		return p, sharedvo.Email{}, fmt.Errorf("name exceeds maximum length of 255 characters")
	case len(p.Phone) > 50:
		return p, sharedvo.Email{}, fmt.Errorf("phone exceeds maximum length of 50 characters")
	case len(p.Specialty) > 255:
		return p, sharedvo.Email{}, fmt.Errorf("specialty exceeds maximum length of 255 characters")
	}

	email, err := sharedvo.NewEmail(p.Email)
	if err != nil {
		return p, sharedvo.Email{}, err
	}
	p.Email = email.String()
	return p, email, nil
}

func NewSupport(profile Profile) (*Support, error) {
	p, email, err := profile.normalize()
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Support{
		name:      p.Name,
		email:     email,
		phone:     p.Phone,
		specialty: p.Specialty,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSupport(id uint, profile Profile, createdAt, updatedAt time.Time) (*Support, error) {
	if id == 0 {
		return nil, fmt.Errorf("support ID cannot be zero")
	}
	email, err := sharedvo.NewEmail(profile.Email)
	if err != nil {
		return nil, fmt.Errorf("support %d: %w", id, err)
	}

	return &Support{
		id:        id,
		name:      profile.Name,
		email:     email,
		phone:     profile.Phone,
		specialty: profile.Specialty,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (s *Support) ID() uint { return s.id }
func (s *Support) Name() string { return s.name }
func (s *Support) Email() sharedvo.Email { return s.email }
func (s *Support) Phone() string { return s.phone }
func (s *Support) Specialty() string { return s.specialty }
func (s *Support) CreatedAt() time.Time { return s.createdAt }
func (s *Support) UpdatedAt() time.Time { return s.updatedAt }

func (s *Support) Profile() Profile {
	return Profile{
		Name:      s.name,
		Email:     s.email.String(),
		Phone:     s.phone,
		Specialty: s.specialty,
	}
}

func (s *Support) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("support ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("support ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *Support) Update(profile Profile) error {
	p, email, err := profile.normalize()
	if err != nil {
		return err
	}

	s.name = p.Name
	s.email = email
	s.phone = p.Phone
	s.specialty = p.Specialty
	s.updatedAt = biztime.NowUTC()
	return nil
}
