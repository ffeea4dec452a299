package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/user"
)

type UserDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LinkedProfileDTO identifies the customer or support record sharing the user's email.
type LinkedProfileDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CurrentUserDTO is the authenticated user's view of themselves.
type CurrentUserDTO struct {
	UserDTO
	Permissions []string          `json:"permissions"`
	Customer    *LinkedProfileDTO `json:"customer"`
	Support     *LinkedProfileDTO `json:"support"`
}

type ListUsersResponse struct {
	Users    []UserDTO `json:"users"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

func ToUserDTO(u *user.User, roles []string) UserDTO {
	if roles == nil {
		roles = []string{}
	}
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email().String(),
		Roles:     roles,
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
