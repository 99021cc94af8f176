package service

import (
	"errors"
	"testing"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "admin-secret"
	cfg.UserJWT.SecretKey = "user-secret"
	cfg.UserJWT.ExpireHours = 2
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true}
	return cfg
}

func TestUserRegisterLoginAndChangePassword(t *testing.T) {
	db := openServiceTestDB(t)
	cfg := testAuthConfig()
	svc := NewUserAuthService(cfg, repository.NewUserRepository(db))

	user, token, expiresAt, err := svc.Register(RegisterInput{Email: " Meera@Example.com ", Password: "silk2024"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "meera@example.com" || user.Username != "meera" {
		t.Fatalf("email should be normalized, got email=%s username=%s", user.Email, user.Username)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("register should issue a token")
	}

	claims := &UserJWTClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.UserJWT.SecretKey), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token should verify with the user secret: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("claims user id want %d got %d", user.ID, claims.UserID)
	}

	if _, _, _, err := svc.Register(RegisterInput{Email: "meera@example.com", Password: "silk2024"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email should be rejected, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "weak@example.com", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password should be rejected, got %v", err)
	}
	if _, _, _, err := svc.Login("MEERA@example.com", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password should be rejected, got %v", err)
	}
	if _, _, _, err := svc.Login("meera@example.com", "silk2024"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "nope", "cotton2025"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password should be rejected, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "silk2024", "cotton2025"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	reloaded, err := svc.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.TokenVersion != 1 {
		t.Fatalf("token version want 1 got %d", reloaded.TokenVersion)
	}
	if _, _, _, err := svc.Login("meera@example.com", "cotton2025"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUserLoginRejectsDisabledAccount(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewUserAuthService(testAuthConfig(), repository.NewUserRepository(db))

	hash, err := hashPassword("linen2024")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	if err := db.Create(&models.User{Email: "off@example.com", PasswordHash: hash, Status: "disabled"}).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	if _, _, _, err := svc.Login("off@example.com", "linen2024"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user should be rejected, got %v", err)
	}
	if _, _, _, err := svc.Login("not-an-email", "linen2024"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("malformed email should be invalid credentials, got %v", err)
	}
	if _, err := svc.GetUserByID(0); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("zero id should be not found, got %v", err)
	}
}

func TestAdminLoginAndChangePassword(t *testing.T) {
	db := openServiceTestDB(t)
	adminRepo := repository.NewAdminRepository(db)
	svc := NewAuthService(testAuthConfig(), adminRepo)

	hash, err := hashPassword("admin2024")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: "ops", PasswordHash: hash}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	if _, _, _, err := svc.Login("ops", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password should be rejected, got %v", err)
	}
	if _, _, _, err := svc.Login("ghost", "admin2024"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown admin should be rejected, got %v", err)
	}

	logged, token, _, err := svc.Login("ops", "admin2024")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.LastLoginAt == nil || token == "" {
		t.Fatalf("login should stamp last_login_at and issue a token")
	}

	if err := svc.ChangePassword(admin.ID, "admin2024", "vastra2025"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	reloaded, err := svc.GetAdmin(admin.ID)
	if err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if reloaded.TokenVersion != 1 || !passwordMatches(reloaded.PasswordHash, "vastra2025") {
		t.Fatalf("password change should bump token version and store the new hash")
	}

	if _, err := svc.GetAdmin(999); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("missing admin should be not found, got %v", err)
	}
}

func TestEmailLocalPart(t *testing.T) {
	cases := map[string]string{
		"asha@example.com": "asha",
		"@example.com":     "@example.com",
		"plain":            "plain",
	}
	for input, want := range cases {
		if got := emailLocalPart(input); got != want {
			t.Fatalf("emailLocalPart(%q) want %q got %q", input, want, got)
		}
	}
}
