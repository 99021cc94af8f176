package public

import (
	"strconv"

	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// ListNotifications 站内通知列表
func (h *Handler) ListNotifications(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread_only", "false"))

	items, total, err := h.NotificationService.List(service.NotificationListInput{
		UserID:     uid,
		UnreadOnly: unreadOnly,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.notification_failed")
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// GetUnreadNotificationCount 未读通知数
func (h *Handler) GetUnreadNotificationCount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	count, err := h.NotificationService.UnreadCount(uid)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.notification_failed")
		return
	}
	response.Success(c, gin.H{"unread": count})
}

// MarkNotificationRead 标记单条已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.NotificationService.MarkRead(uid, id); err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.notification_failed")
		return
	}
	response.Success(c, gin.H{"read": true})
}

// MarkAllNotificationsRead 全部标记已读
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	updated, err := h.NotificationService.MarkAllRead(uid)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.notification_failed")
		return
	}
	response.Success(c, gin.H{"updated": updated})
}
