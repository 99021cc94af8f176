package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const defaultUserLocale = "en-US"

// UserJWTClaims 顾客令牌声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册请求
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"max=80"`
	Password string `json:"password" validate:"required"`
}

// UserAuthService 顾客注册、登录与改密
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserAuthService 创建顾客认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{cfg: cfg, userRepo: userRepo}
}

// IssueToken 为顾客签发令牌，返回令牌与过期时间
func (s *UserAuthService) IssueToken(user *models.User) (string, time.Time, error) {
	window, expiresAt := tokenWindow(s.cfg.UserJWT.ExpireHours)
	token, err := signHS256(s.cfg.UserJWT.SecretKey, UserJWTClaims{
		UserID:           user.ID,
		Email:            user.Email,
		TokenVersion:     user.TokenVersion,
		RegisteredClaims: window,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Register 创建顾客账号并直接登录
// 未填写用户名时取邮箱 @ 之前的部分
func (s *UserAuthService) Register(input RegisterInput) (*models.User, string, time.Time, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	if err := validateStruct(input); err != nil {
		return nil, "", time.Time{}, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, "", time.Time{}, err
	}

	switch existing, err := s.userRepo.GetByEmail(input.Email); {
	case err != nil:
		return nil, "", time.Time{}, wrapStorage("load user", err)
	case existing != nil:
		return nil, "", time.Time{}, ErrEmailExists
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user := &models.User{
		Email:        input.Email,
		Username:     firstNonEmpty(input.Username, emailLocalPart(input.Email)),
		PasswordHash: hash,
		Status:       constants.UserStatusActive,
		Locale:       defaultUserLocale,
		LastLoginAt:  &now,
	}
	if err := s.userRepo.Create(user); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if repository.IsUniqueViolation(err) {
			return nil, "", time.Time{}, ErrEmailExists
		}
		return nil, "", time.Time{}, wrapStorage("create user", err)
	}

	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.rememberAuthState(user)
	logger.Infow("user_registered", "user_id", user.ID)
	return user, token, expiresAt, nil
}

// Login 邮箱密码登录，停用账号返回 ErrUserDisabled
func (s *UserAuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	address, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(address)
	if err != nil {
		return nil, "", time.Time{}, wrapStorage("load user", err)
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !strings.EqualFold(user.Status, constants.UserStatusActive) {
		return nil, "", time.Time{}, ErrUserDisabled
	}
	if !passwordMatches(user.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, wrapStorage("update user", err)
	}
	s.rememberAuthState(user)
	return user, token, expiresAt, nil
}

// ChangePassword 修改密码并递增 token_version，已签发的令牌随之失效
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !passwordMatches(user.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	if user.PasswordHash, err = hashPassword(newPassword); err != nil {
		return err
	}
	user.TokenVersion++
	if err := s.userRepo.Update(user); err != nil {
		return wrapStorage("update user", err)
	}
	s.rememberAuthState(user)
	return nil
}

// GetUserByID 查询顾客
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, wrapStorage("load user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserAuthService) rememberAuthState(user *models.User) {
	if err := cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user)); err != nil {
		logger.Debugw("user_auth_state_cache_failed", "user_id", user.ID, "error", err)
	}
}

func normalizeEmail(email string) (string, error) {
	address := strings.ToLower(strings.TrimSpace(email))
	if address == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return "", ErrInvalidEmail
	}
	return address, nil
}

func emailLocalPart(email string) string {
	if local, _, ok := strings.Cut(email, "@"); ok && strings.TrimSpace(local) != "" {
		return strings.TrimSpace(local)
	}
	return email
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
