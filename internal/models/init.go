package models

import (
	"errors"
	"strings"

	"github.com/vastra-shop/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// InitDefaultAdmin 初始化默认管理员账号
// 已存在任意管理员时只确保默认账号为超级管理员
func InitDefaultAdmin(username, password string) (*Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		username = defaultAdminUsername
	}

	var count int64
	if err := DB.Model(&Admin{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		var existing Admin
		err := DB.Where("username = ?", username).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !existing.IsSuper {
			if err := DB.Model(&existing).Update("is_super", true).Error; err != nil {
				logger.Warnw("ensure_default_admin_super_failed", "username", username, "error", err)
			}
		}
		return &existing, nil
	}

	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsSuper:      true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return nil, err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Infow("default_admin_created", "username", username)
	}
	return &admin, nil
}
