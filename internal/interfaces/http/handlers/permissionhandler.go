package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/permission"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// PermissionHandler serves role management and the permission catalogue.
type PermissionHandler struct {
	service roleService
	logger  logger.Interface
}

func NewPermissionHandler(service roleService, log logger.Interface) *PermissionHandler {
	return &PermissionHandler{service: service, logger: log}
}

// ListPermissions handles GET /permissions
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	perms, err := h.service.ListPermissions(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", perms)
}

// ListRoles handles GET /roles
func (h *PermissionHandler) ListRoles(c *gin.Context) {
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", roles)
}

// GetRole handles GET /roles/:id
func (h *PermissionHandler) GetRole(c *gin.Context) {
	id, err := parseIDParam(c, "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	role, err := h.service.GetRole(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", role)
}

// CreateRole handles POST /roles
func (h *PermissionHandler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	role, err := h.service.CreateRole(c.Request.Context(), permission.CreateRoleCommand{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("role created", "role_id", role.ID, "slug", role.Slug)
	utils.CreatedResponse(c, role, "Role created successfully")
}

// UpdateRole handles PUT /roles/:id
func (h *PermissionHandler) UpdateRole(c *gin.Context) {
	id, err := parseIDParam(c, "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	role, err := h.service.UpdateRole(c.Request.Context(), id, permission.UpdateRoleCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Role updated successfully", role)
}

// DeleteRole handles DELETE /roles/:id
func (h *PermissionHandler) DeleteRole(c *gin.Context) {
	id, err := parseIDParam(c, "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.DeleteRole(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// SyncPermissions handles PUT /roles/:id/permissions. The role ends up with
// exactly the listed permission codes.
func (h *PermissionHandler) SyncPermissions(c *gin.Context) {
	id, err := parseIDParam(c, "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SyncPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}
	if req.Permissions == nil {
		req.Permissions = []string{}
	}

	role, err := h.service.SyncPermissions(c.Request.Context(), id, req.Permissions)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Permissions updated successfully", role)
}
