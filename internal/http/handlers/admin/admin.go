package admin

import (
	"time"

	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/models"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username       string                `json:"username" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	req, ok := bindBody[LoginRequest](c)
	if !ok {
		return
	}

	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneAdminLogin, req.CaptchaPayload.ToServicePayload()); err != nil {
			respondWithMappedError(c, err, adminAuthErrorRules, response.CodeInternal, "error.captcha_failed")
			return
		}
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		requestLog(c).Infow("admin_login_rejected", "username", req.Username, "client_ip", c.ClientIP())
		respondWithMappedError(c, err, adminAuthErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	requestLog(c).Infow("admin_login", "admin_id", admin.ID, "client_ip", c.ClientIP())
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"user":       adminProfile(admin, nil),
	})
}

// GetAdminMe 当前管理员信息与角色
func (h *Handler) GetAdminMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	admin, err := h.AuthService.GetAdmin(adminID)
	if err != nil {
		respondWithMappedError(c, err, adminAuthErrorRules, response.CodeInternal, "error.internal")
		return
	}
	var roles []string
	if h.AuthzService != nil {
		roles, err = h.AuthzService.GetAdminRoles(adminID)
		if err != nil {
			respondError(c, response.CodeInternal, "error.role_failed", err)
			return
		}
	}
	response.Success(c, adminProfile(admin, roles))
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	req, ok := bindBody[UpdatePasswordRequest](c)
	if !ok {
		return
	}

	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, adminAuthErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_password_changed", "admin_id", adminID)
	response.Success(c, gin.H{"updated": true})
}

func adminProfile(admin *models.Admin, roles []string) gin.H {
	profile := gin.H{
		"id":            admin.ID,
		"username":      admin.Username,
		"is_super":      admin.IsSuper,
		"last_login_at": admin.LastLoginAt,
	}
	if roles != nil {
		profile["roles"] = roles
	}
	return profile
}
