package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	svc, err := NewService(db)
	require.NoError(t, err)
	require.NoError(t, svc.BootstrapBuiltinRoles())
	return svc
}

func TestViewerIsReadOnly(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.SetAdminRoles(1, []string{RoleViewer}))

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/orders/42", "get")
	require.NoError(t, err)
	assert.True(t, allow)

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/orders/42/status", "PATCH")
	require.NoError(t, err)
	assert.False(t, allow)
}

func TestOperatorPermissions(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.SetAdminRoles(2, []string{"Operator"}))

	cases := []struct {
		obj   string
		act   string
		allow bool
	}{
		{"/api/v1/admin/orders/7/status", "PATCH", true},
		{"/api/v1/admin/products", "POST", true},
		{"/api/v1/admin/dashboard", "GET", true},
		{"/api/v1/admin/authz/admins/3/roles", "PUT", false},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceAdmin(2, tc.obj, tc.act)
		require.NoError(t, err)
		assert.Equal(t, tc.allow, allow, "%s %s", tc.act, tc.obj)
	}
}

func TestSetAdminRolesOverridesAndValidates(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.SetAdminRoles(3, []string{RoleSuperAdmin}))

	allow, err := svc.EnforceAdmin(3, "/api/v1/admin/authz/admins/3/roles", "PUT")
	require.NoError(t, err)
	assert.True(t, allow)

	require.NoError(t, svc.SetAdminRoles(3, []string{RoleViewer}))
	roles, err := svc.GetAdminRoles(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"role:viewer"}, roles)

	assert.ErrorIs(t, svc.SetAdminRoles(3, []string{"auditor"}), ErrUnknownRole)
	assert.ErrorIs(t, svc.SetAdminRoles(3, []string{"  "}), ErrUnknownRole)

	// 校验失败不应改动已有绑定
	roles, err = svc.GetAdminRoles(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"role:viewer"}, roles)
}

func TestBootstrapIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.BootstrapBuiltinRoles())

	views, err := svc.ListRoles()
	require.NoError(t, err)
	require.Len(t, views, 3)
	for _, view := range views {
		assert.NotEmpty(t, view.Policies, view.Role)
	}
	assert.Len(t, views[0].Policies, 1)
}

func TestNilServiceIsUnavailable(t *testing.T) {
	var svc *Service
	_, err := svc.Enforce("admin:1", "/admin/orders", "GET")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, svc.BootstrapBuiltinRoles(), ErrUnavailable)
}

func TestNormalizeHelpers(t *testing.T) {
	assert.Equal(t, "/admin/orders", NormalizeObject("/api/v1/admin/orders"))
	assert.Equal(t, "/", NormalizeObject("/api/v1"))
	assert.Equal(t, "/admin", NormalizeObject("admin"))
	assert.Equal(t, "PATCH", NormalizeAction(" patch "))
	assert.Equal(t, "admin:12", SubjectForAdmin(12))

	role, err := NormalizeRole("Super Admin")
	require.NoError(t, err)
	assert.Equal(t, "role:super_admin", role)
	_, err = NormalizeRole("role:")
	assert.Error(t, err)
}
