package service

import (
	"errors"
	"testing"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/constants"
)

func TestCaptchaDisabledSkipsVerify(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: false})
	if err := svc.Verify(constants.CaptchaSceneUserLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha should pass, got %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("disabled captcha cannot generate, got %v", err)
	}
}

func TestCaptchaVerifyIsOneShotAndCaseInsensitive(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Enabled: true,
		Scenes:  config.CaptchaSceneConfig{UserLogin: true},
	})
	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}

	if err := svc.Verify(constants.CaptchaSceneUserLogin, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("missing captcha should be required, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneAdminLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("scene off should pass, got %v", err)
	}

	store := svc.imageStore()
	if err := store.Set("fixed", "AbC12"); err != nil {
		t.Fatalf("seed store failed: %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneUserLogin, CaptchaVerifyPayload{CaptchaID: "fixed", CaptchaCode: "abc12"}); err != nil {
		t.Fatalf("answer should match case-insensitively, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneUserLogin, CaptchaVerifyPayload{CaptchaID: "fixed", CaptchaCode: "abc12"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("answer is one-shot, got %v", err)
	}
}
