package service

import (
	"context"
	"strings"

	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"
)

// StatusNotifier 状态变更通知投递接口
type StatusNotifier interface {
	Notify(ctx context.Context, userID uint, message string) error
}

// NotificationService 站内通知服务
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify 为用户写入一条未读通知
func (s *NotificationService) Notify(_ context.Context, userID uint, message string) error {
	message = strings.TrimSpace(message)
	if userID == 0 || message == "" {
		return newValidationError("message", "is required")
	}
	notification := &models.Notification{UserID: userID, Message: message}
	if err := s.repo.Create(notification); err != nil {
		return wrapStorage("create notification", err)
	}
	return nil
}

// NotificationListInput 通知列表参数
type NotificationListInput struct {
	UserID     uint
	UnreadOnly bool
	Page       int
	PageSize   int
}

// List 通知列表，按时间倒序
func (s *NotificationService) List(input NotificationListInput) ([]models.Notification, int64, error) {
	items, total, err := s.repo.List(repository.NotificationListFilter{
		UserID:     input.UserID,
		UnreadOnly: input.UnreadOnly,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, 0, wrapStorage("list notifications", err)
	}
	return items, total, nil
}

// UnreadCount 未读数量
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	count, err := s.repo.CountUnread(userID)
	if err != nil {
		return 0, wrapStorage("count unread notifications", err)
	}
	return count, nil
}

// MarkRead 标记单条通知已读；不属于本人或不存在返回 ErrItemNotFound，重复标记视为成功
func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	if notificationID == 0 {
		return ErrItemNotFound
	}
	notification, err := s.repo.GetForUser(notificationID, userID)
	if err != nil {
		return wrapStorage("load notification", err)
	}
	if notification == nil {
		return ErrItemNotFound
	}
	if notification.IsRead {
		return nil
	}
	if _, err := s.repo.MarkRead(userID, []uint{notificationID}); err != nil {
		return wrapStorage("mark notification read", err)
	}
	return nil
}

// MarkAllRead 全部标记已读，返回标记数量
func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	affected, err := s.repo.MarkAllRead(userID)
	if err != nil {
		return 0, wrapStorage("mark all notifications read", err)
	}
	return affected, nil
}
