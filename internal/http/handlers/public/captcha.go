package public

import (
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCaptchaConfig 获取验证码公开配置
func (h *Handler) GetCaptchaConfig(c *gin.Context) {
	if h.CaptchaService == nil {
		response.Success(c, service.CaptchaPublicSetting{Scenes: map[string]bool{}})
		return
	}
	response.Success(c, h.CaptchaService.PublicSetting())
}

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", service.ErrCaptchaConfigInvalid)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_failed")
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
