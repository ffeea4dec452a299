package mappers

import (
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	vo "github.com/orris-inc/helpdesk/internal/domain/permission/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

func RoleToDomain(model *models.RoleModel) (*permission.Role, error) {
	return permission.ReconstructRole(
		model.ID,
		model.Name,
		model.Slug,
		model.Description,
		model.IsSystem,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func PermissionToDomain(model *models.PermissionModel) (*permission.Permission, error) {
	return permission.ReconstructPermission(
		model.ID,
		vo.Resource(model.Resource),
		vo.Action(model.Action),
		model.Description,
		model.CreatedAt,
	)
}
