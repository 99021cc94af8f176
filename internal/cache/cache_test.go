package cache

import (
	"context"
	"testing"
	"time"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	require.NoError(t, InitRedis(&config.RedisConfig{Enabled: false}))
	ctx := context.Background()
	assert.False(t, Enabled())
	assert.Nil(t, Client())

	hit, err := GetJSON(ctx, "catalog:products", &struct{}{})
	require.NoError(t, err)
	assert.False(t, hit)

	acquired, err := SetNX(ctx, "idem:order:1:abc", "1", time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)

	require.NoError(t, SetUserAuthState(ctx, BuildUserAuthState(&models.User{ID: 1, TokenVersion: 2})))
	state, hit, err := GetUserAuthState(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, state)
	require.NoError(t, DelByPattern(ctx, "catalog:*"))
	require.NoError(t, Close())
}

func TestKeys(t *testing.T) {
	prev := prefix
	t.Cleanup(func() { prefix = prev })
	prefix = "vastra"

	assert.Equal(t, "vastra:idem:order:1:abc", buildKey(" idem:order:1:abc "))
	assert.Equal(t, "vastra", buildKey(""))
	assert.Equal(t, "auth:admin:3", adminStates.key(3))
}

func TestBuildAuthStates(t *testing.T) {
	assert.Nil(t, BuildUserAuthState(nil))
	assert.Nil(t, BuildAdminAuthState(nil))

	admin := BuildAdminAuthState(&models.Admin{ID: 4, Username: "ops", TokenVersion: 7, IsSuper: true})
	assert.Equal(t, &AdminAuthState{AdminID: 4, Username: "ops", TokenVersion: 7, IsSuper: true}, admin)
}
