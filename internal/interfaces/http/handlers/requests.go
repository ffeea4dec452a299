package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/customer"
	"github.com/orris-inc/helpdesk/internal/application/support"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
	Company  string `json:"company" binding:"max=150"`
	Phone    string `json:"phone" binding:"max=30"`
}

type CreateUserRequest struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Email    string   `json:"email" binding:"required,email,max=255"`
	Password string   `json:"password" binding:"required,max=72"`
	Roles    []string `json:"roles" binding:"required,min=1,dive,required"`
}

// UpdateUserRequest leaves the password unchanged when empty and the roles
// unchanged when omitted.
type UpdateUserRequest struct {
	Name     string    `json:"name" binding:"required,max=100"`
	Email    string    `json:"email" binding:"required,email,max=255"`
	Password string    `json:"password" binding:"omitempty,max=72"`
	Roles    *[]string `json:"roles" binding:"omitempty,min=1"`
}

type CustomerRequest struct {
	Name    string `json:"name" binding:"required,max=150"`
	Company string `json:"company" binding:"max=150"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Phone   string `json:"phone" binding:"max=30"`
	Address string `json:"address" binding:"max=255"`
}

func (r CustomerRequest) toCommand() customer.SaveCommand {
	return customer.SaveCommand{
		Name:    r.Name,
		Company: r.Company,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

type SupportRequest struct {
	Name      string `json:"name" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Phone     string `json:"phone" binding:"max=30"`
	Specialty string `json:"specialty" binding:"max=150"`
}

func (r SupportRequest) toCommand() support.SaveCommand {
	return support.SaveCommand{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Specialty: r.Specialty,
	}
}

type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Slug        string   `json:"slug" binding:"required,max=100"`
	Description string   `json:"description" binding:"max=255"`
	Permissions []string `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
}

type SyncPermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

type ExportTicketsRequest struct {
	IDs []uint `json:"ids"`
	All bool   `json:"all"`
}

func parseIDParam(c *gin.Context, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid " + label + " ID")
	}
	return uint(id), nil
}

// parseIDList reads a comma separated id list such as "3,5,8".
func parseIDList(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			return nil, errors.NewFieldValidationError(map[string]string{
				"ids": "ids must be a comma separated list of positive integers",
			})
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
