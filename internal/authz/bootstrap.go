package authz

import (
	"fmt"
	"strings"
)

// 预置角色
const (
	RoleSuperAdmin = "super_admin"
	RoleOperator   = "operator"
	RoleViewer     = "viewer"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: RoleViewer,
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
		},
		{
			Role:     RoleOperator,
			Inherits: []string{RoleViewer},
			Policies: []Policy{
				{Object: "/admin/categories", Action: "POST"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/products", Action: "POST"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/orders/:id", Action: "*"},
				{Object: "/admin/orders/:id/status", Action: "PATCH"},
				{Object: "/admin/custom-orders/:id", Action: "*"},
				{Object: "/admin/custom-orders/:id/status", Action: "PATCH"},
				{Object: "/admin/users/:id", Action: "DELETE"},
				{Object: "/admin/users/batch-status", Action: "PUT"},
			},
		},
		{
			Role:     RoleSuperAdmin,
			Inherits: []string{RoleOperator},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// IsBuiltinRole 判断已规范化的角色名是否属于预置角色
func IsBuiltinRole(role string) bool {
	name := strings.TrimPrefix(role, rolePrefix)
	for _, seed := range BuiltinRoleSeeds() {
		if seed.Role == name {
			return true
		}
	}
	return false
}

// BootstrapBuiltinRoles 写入预置角色的继承关系与策略，已存在的规则会被跳过
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	var (
		inherits [][]string
		policies [][]string
	)
	for _, seed := range BuiltinRoleSeeds() {
		role := rolePrefix + seed.Role
		for _, parent := range seed.Inherits {
			inherits = append(inherits, []string{role, rolePrefix + parent})
		}
		for _, policy := range seed.Policies {
			policies = append(policies, []string{role, NormalizeObject(policy.Object), NormalizeAction(policy.Action)})
		}
	}

	for _, rule := range inherits {
		if _, err := s.enforcer.AddNamedGroupingPolicy("g", rule[0], rule[1]); err != nil {
			return fmt.Errorf("seed role inheritance %s -> %s: %w", rule[0], rule[1], err)
		}
	}
	for _, rule := range policies {
		if _, err := s.enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
			return fmt.Errorf("seed policy %s %s %s: %w", rule[0], rule[2], rule[1], err)
		}
	}
	return nil
}
