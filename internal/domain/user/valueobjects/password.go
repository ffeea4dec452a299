package valueobjects

import (
	"fmt"
	"unicode"
)

const maxPasswordBytes = 72 // bcrypt input limit

// Password is a plain-text password that passed the active policy.
type Password struct {
	value string
}

func (p *Password) String() string {
	return p.value
}

// PasswordPolicy defines the password validation rules
type PasswordPolicy struct {
	MinLength     int
	RequireLetter bool
	RequireNumber bool
}

// DefaultPasswordPolicy returns the default password policy
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:     8,
		RequireLetter: true,
		RequireNumber: true,
	}
}

// ValidatePassword validates password against the policy
func (p *PasswordPolicy) ValidatePassword(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordBytes)
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if p.RequireLetter && !hasLetter {
		return fmt.Errorf("password must contain at least one letter")
	}
	if p.RequireNumber && !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}

// NewPassword validates plainPassword against policy (the default when nil).
func NewPassword(plainPassword string, policy *PasswordPolicy) (*Password, error) {
	if policy == nil {
		policy = DefaultPasswordPolicy()
	}
	if err := policy.ValidatePassword(plainPassword); err != nil {
		return nil, err
	}
	return &Password{value: plainPassword}, nil
}
