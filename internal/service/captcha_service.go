package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/logger"

	"github.com/mojocn/base64Captcha"
)

// 去掉了易混淆的 0/1/i/l/o
const captchaAlphabet = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaPublicSetting 下发给前端的开关
type CaptchaPublicSetting struct {
	Enabled bool            `json:"enabled"`
	Scenes  map[string]bool `json:"scenes"`
}

// CaptchaService 图片验证码。
// 启用 Redis 时答案存 Redis 供多实例共享，否则存进程内
type CaptchaService struct {
	cfg    config.CaptchaConfig
	scenes map[string]bool

	once  sync.Once
	store base64Captcha.Store
}

func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	image := &cfg.Image
	if image.Length <= 0 || image.Length > 8 {
		image.Length = 5
	}
	image.Width = positiveOr(image.Width, 240)
	image.Height = positiveOr(image.Height, 80)
	image.NoiseCount = max(image.NoiseCount, 0)
	image.ExpireSeconds = positiveOr(image.ExpireSeconds, 300)
	image.MaxStore = positiveOr(image.MaxStore, 10240)

	return &CaptchaService{
		cfg: cfg,
		scenes: map[string]bool{
			constants.CaptchaSceneUserLogin:  cfg.Scenes.UserLogin,
			constants.CaptchaSceneAdminLogin: cfg.Scenes.AdminLogin,
			constants.CaptchaSceneRegister:   cfg.Scenes.Register,
		},
	}
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func (s *CaptchaService) PublicSetting() CaptchaPublicSetting {
	scenes := make(map[string]bool, len(s.scenes))
	for scene := range s.scenes {
		scenes[scene] = s.IsSceneEnabled(scene)
	}
	return CaptchaPublicSetting{Enabled: s.cfg.Enabled, Scenes: scenes}
}

// IsSceneEnabled 总开关关闭或未知场景一律不需要验证码
func (s *CaptchaService) IsSceneEnabled(scene string) bool {
	if s == nil || !s.cfg.Enabled {
		return false
	}
	return s.scenes[strings.TrimSpace(scene)]
}

func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s == nil || !s.cfg.Enabled {
		return nil, ErrCaptchaConfigInvalid
	}
	image := s.cfg.Image
	driver := base64Captcha.NewDriverString(
		image.Height, image.Width, image.NoiseCount, image.ShowLine, image.Length,
		captchaAlphabet, nil, base64Captcha.DefaultEmbeddedFonts, nil,
	)
	id, b64s, _, err := base64Captcha.NewCaptcha(driver, s.imageStore()).Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{CaptchaID: id, ImageBase64: b64s}, nil
}

// Verify 答案一次性有效，比较时忽略大小写
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.IsSceneEnabled(scene) {
		return nil
	}
	id := strings.TrimSpace(payload.CaptchaID)
	code := strings.ToLower(strings.TrimSpace(payload.CaptchaCode))
	if id == "" || code == "" {
		return ErrCaptchaRequired
	}
	if !s.imageStore().Verify(id, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) imageStore() base64Captcha.Store {
	s.once.Do(func() {
		ttl := time.Duration(s.cfg.Image.ExpireSeconds) * time.Second
		if cache.Enabled() {
			s.store = redisCaptchaStore{ttl: ttl}
		} else {
			s.store = lowerCaseStore{Store: base64Captcha.NewMemoryStore(s.cfg.Image.MaxStore, ttl)}
		}
	})
	return s.store
}

type lowerCaseStore struct {
	base64Captcha.Store
}

func (l lowerCaseStore) Set(id, value string) error {
	return l.Store.Set(id, strings.ToLower(value))
}

type redisCaptchaStore struct {
	ttl time.Duration
}

func (redisCaptchaStore) key(id string) string {
	return "captcha:" + id
}

func (r redisCaptchaStore) Set(id, value string) error {
	return cache.SetString(context.Background(), r.key(id), strings.ToLower(value), r.ttl)
}

func (r redisCaptchaStore) Get(id string, clear bool) string {
	ctx := context.Background()
	value, ok, err := cache.GetString(ctx, r.key(id))
	if err != nil || !ok {
		if err != nil {
			logger.Warnw("captcha_store_read_failed", "error", err)
		}
		return ""
	}
	if clear {
		if err := cache.Del(ctx, r.key(id)); err != nil {
			logger.Warnw("captcha_store_clear_failed", "error", err)
		}
	}
	return value
}

func (r redisCaptchaStore) Verify(id, answer string, clear bool) bool {
	value := r.Get(id, clear)
	return value != "" && value == strings.ToLower(strings.TrimSpace(answer))
}
