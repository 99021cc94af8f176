package admin

import (
	"errors"

	"github.com/vastra-shop/internal/authz"
	"github.com/vastra-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// ListAuthzRoles 获取预置角色及策略
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, roles)
}

// ListAuthzAdmins 管理员列表及其角色
func (h *Handler) ListAuthzAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.storage_unavailable", err)
		return
	}

	items := make([]gin.H, 0, len(admins))
	for i := range admins {
		roles, err := h.AuthzService.GetAdminRoles(admins[i].ID)
		if err != nil {
			respondAuthzError(c, err)
			return
		}
		items = append(items, adminProfile(&admins[i], roles))
	}
	response.Success(c, items)
}

// GetAuthzAdminRoles 获取管理员角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := pathID(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}

// SetAuthzAdminRoles 覆盖设置管理员角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := bindBody[authzSetAdminRolesPayload](c)
	if !ok {
		return
	}

	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.storage_unavailable", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return
	}

	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondAuthzError(c, err)
		return
	}
	requestLog(c).Infow("authz_admin_roles_updated", "operator_id", c.GetUint("admin_id"), "admin_id", adminID, "roles", req.Roles)

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}

func respondAuthzError(c *gin.Context, err error) {
	if errors.Is(err, authz.ErrUnknownRole) {
		respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		return
	}
	respondError(c, response.CodeInternal, "error.role_failed", err)
}
