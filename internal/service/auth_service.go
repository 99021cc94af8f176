package service

import (
	"context"
	"time"

	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims 管理员令牌声明，token_version 与库中不一致时令牌失效
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// AuthService 管理员登录与密码维护
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
}

// NewAuthService 创建管理员认证服务
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{cfg: cfg, adminRepo: adminRepo}
}

func (s *AuthService) issueToken(admin *models.Admin) (string, time.Time, error) {
	window, expiresAt := tokenWindow(s.cfg.JWT.ExpireHours)
	token, err := signHS256(s.cfg.JWT.SecretKey, JWTClaims{
		AdminID:          admin.ID,
		Username:         admin.Username,
		TokenVersion:     admin.TokenVersion,
		RegisteredClaims: window,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Login 校验账号密码并签发令牌，同时刷新鉴权状态缓存
func (s *AuthService) Login(username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, wrapStorage("load admin", err)
	}
	if admin == nil || !passwordMatches(admin.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	if err := s.adminRepo.TouchLogin(admin.ID, now); err != nil {
		return nil, "", time.Time{}, wrapStorage("touch admin login", err)
	}
	admin.LastLoginAt = &now
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, token, expiresAt, nil
}

// GetAdmin 按 ID 查询管理员
func (s *AuthService) GetAdmin(adminID uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	switch {
	case err != nil:
		return nil, wrapStorage("load admin", err)
	case admin == nil:
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

// ChangePassword 修改密码，仓储层递增 token_version 使旧令牌失效
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.GetAdmin(adminID)
	if err != nil {
		return err
	}
	if !passwordMatches(admin.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.adminRepo.UpdatePassword(admin.ID, hash); err != nil {
		return wrapStorage("update admin password", err)
	}
	_ = cache.DelAdminAuthState(context.Background(), admin.ID)
	return nil
}
