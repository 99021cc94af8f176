package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/vastra-shop/internal/models"
)

// 改密、禁用、删除会主动清理快照，TTL 只是兜底
const authStateTTL = 5 * time.Minute

// UserAuthState JWT 中间件据此校验 token 版本与账号状态，命中时免查库
type UserAuthState struct {
	UserID       uint   `json:"user_id"`
	Status       string `json:"status"`
	TokenVersion uint64 `json:"token_version"`
}

type AdminAuthState struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	IsSuper      bool   `json:"is_super"`
}

// authStates 按主体类型区分 key 空间：auth:<kind>:<id>
type authStates[T any] string

var (
	userStates  authStates[UserAuthState]  = "user"
	adminStates authStates[AdminAuthState] = "admin"
)

func (kind authStates[T]) key(id uint) string {
	return "auth:" + string(kind) + ":" + strconv.FormatUint(uint64(id), 10)
}

func (kind authStates[T]) get(ctx context.Context, id uint) (*T, bool, error) {
	if id == 0 {
		return nil, false, nil
	}
	var state T
	if hit, err := GetJSON(ctx, kind.key(id), &state); err != nil || !hit {
		return nil, false, err
	}
	return &state, true, nil
}

func (kind authStates[T]) set(ctx context.Context, id uint, state *T) error {
	if state == nil || id == 0 {
		return nil
	}
	return SetJSON(ctx, kind.key(id), state, authStateTTL)
}

func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{UserID: user.ID, Status: user.Status, TokenVersion: user.TokenVersion}
}

func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	return &AdminAuthState{AdminID: admin.ID, Username: admin.Username, TokenVersion: admin.TokenVersion, IsSuper: admin.IsSuper}
}

func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	return userStates.get(ctx, userID)
}

func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil {
		return nil
	}
	return userStates.set(ctx, state.UserID, state)
}

func DelUserAuthState(ctx context.Context, userID uint) error {
	return Del(ctx, userStates.key(userID))
}

func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	return adminStates.get(ctx, adminID)
}

func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil {
		return nil
	}
	return adminStates.set(ctx, state.AdminID, state)
}

func DelAdminAuthState(ctx context.Context, adminID uint) error {
	return Del(ctx, adminStates.key(adminID))
}
