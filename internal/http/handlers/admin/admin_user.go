package admin

import (
	"strings"

	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// BatchUpdateUserStatusRequest 批量更新客户状态
type BatchUpdateUserStatusRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// GetAdminUsers 客户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	users, total, err := h.UserAdminService.List(service.UserListInput{
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.user_failed")
		return
	}
	response.SuccessWithPage(c, users, response.BuildPagination(page, pageSize, total))
}

// DeleteAdminUser 删除客户
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.UserAdminService.Delete(id); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.user_failed")
		return
	}
	response.Success(c, deletedResult)
}

// BatchUpdateUserStatus 批量启用 / 禁用客户
func (h *Handler) BatchUpdateUserStatus(c *gin.Context) {
	req, ok := bindBody[BatchUpdateUserStatusRequest](c)
	if !ok {
		return
	}

	if err := h.UserAdminService.UpdateStatus(req.UserIDs, req.Status); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.user_failed")
		return
	}
	response.Success(c, gin.H{"updated": len(req.UserIDs)})
}
