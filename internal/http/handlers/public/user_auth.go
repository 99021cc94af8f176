package public

import (
	"time"

	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email          string                `json:"email" binding:"required"`
	Username       string                `json:"username"`
	Password       string                `json:"password" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email          string                `json:"email" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// ChangeUserPasswordRequest 修改密码请求
type ChangeUserPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	req, ok := bindBody[UserRegisterRequest](c)
	if !ok {
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneRegister, req.CaptchaPayload) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.user_failed")
		return
	}
	response.Success(c, userTokenResponse(user, token, expiresAt))
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	req, ok := bindBody[UserLoginRequest](c)
	if !ok {
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneUserLogin, req.CaptchaPayload) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		requestLog(c).Infow("user_login_rejected", "client_ip", c.ClientIP(), "error", err)
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.login_failed")
		return
	}
	requestLog(c).Infow("user_login", "user_id", user.ID, "client_ip", c.ClientIP())
	response.Success(c, userTokenResponse(user, token, expiresAt))
}

// GetCurrentUser 获取当前用户信息
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.user_failed")
		return
	}
	response.Success(c, userProfileResponse(user))
}

// ChangeUserPassword 登录态修改密码
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	req, ok := bindBody[ChangeUserPasswordRequest](c)
	if !ok {
		return
	}

	if err := h.UserAuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.user_failed")
		return
	}
	response.Success(c, gin.H{"updated": true})
}

func userTokenResponse(user *models.User, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"user":       userProfileResponse(user),
	}
}

func userProfileResponse(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"username":      user.Username,
		"locale":        user.Locale,
		"status":        user.Status,
		"saved_address": user.SavedAddress,
		"last_login_at": user.LastLoginAt,
	}
}
