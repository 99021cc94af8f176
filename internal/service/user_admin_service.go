package service

import (
	"context"
	"strings"

	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"
)

// UserAdminService 后台客户管理
type UserAdminService struct {
	userRepo repository.UserRepository
}

// NewUserAdminService 创建客户管理服务
func NewUserAdminService(userRepo repository.UserRepository) *UserAdminService {
	return &UserAdminService{userRepo: userRepo}
}

// UserListInput 客户列表查询
type UserListInput struct {
	Keyword  string
	Status   string
	Page     int
	PageSize int
}

// List 分页查询客户
func (s *UserAdminService) List(input UserListInput) ([]models.User, int64, error) {
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != "" && status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return nil, 0, newValidationError("status", "oneof active disabled")
	}
	users, total, err := s.userRepo.List(repository.UserListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Keyword:  strings.TrimSpace(input.Keyword),
		Status:   status,
	})
	if err != nil {
		return nil, 0, wrapStorage("list users", err)
	}
	return users, total, nil
}

// Delete 删除客户，已签发的 token 随之失效
func (s *UserAdminService) Delete(id uint) error {
	if id == 0 {
		return newValidationError("id", "required")
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return wrapStorage("get user", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.userRepo.Delete(id); err != nil {
		return wrapStorage("delete user", err)
	}
	s.dropAuthState(id)
	logger.Infow("user_deleted_by_admin", "user_id", id)
	return nil
}

// UpdateStatus 启用或禁用客户
func (s *UserAdminService) UpdateStatus(ids []uint, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return newValidationError("status", "oneof active disabled")
	}
	if len(ids) == 0 {
		return newValidationError("user_ids", "required")
	}
	if err := s.userRepo.BatchUpdateStatus(ids, status); err != nil {
		return wrapStorage("update user status", err)
	}
	for _, id := range ids {
		s.dropAuthState(id)
	}
	return nil
}

func (s *UserAdminService) dropAuthState(userID uint) {
	if err := cache.DelUserAuthState(context.Background(), userID); err != nil {
		logger.Debugw("user_auth_state_drop_failed", "user_id", userID, "error", err)
	}
}
