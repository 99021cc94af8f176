package authz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const casbinTableName = "casbin_rule"

// 路由对象用 keyMatch2 匹配，因此策略中可以直接写 gin 路由模板（/admin/orders/:id）
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var (
	ErrUnavailable = errors.New("authz service unavailable")
	ErrUnknownRole = errors.New("unknown role")
)

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// RoleView 角色及其直接策略
type RoleView struct {
	Role     string   `json:"role"`
	Policies []Policy `json:"policies"`
}

// Service 管理端 RBAC，策略持久化在 casbin_rule 表
// 管理员以 admin:<id> 作为主体，通过 g 规则挂到预置角色
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务并加载已有策略
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, errors.New("authz: db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("authz adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("authz enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz load policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

func (s *Service) ready() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	return nil
}

// Enforce 执行授权判断，对象与动作会先规范化
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceAdmin 按管理员 ID 判定授权
func (s *Service) EnforceAdmin(adminID uint, obj, act string) (bool, error) {
	return s.Enforce(SubjectForAdmin(adminID), obj, act)
}

// ListRoles 列出预置角色及其直接策略（不含继承）
func (s *Service) ListRoles() ([]RoleView, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var views []RoleView
	for _, seed := range BuiltinRoleSeeds() {
		role := rolePrefix + seed.Role
		rules, err := s.enforcer.GetFilteredPolicy(0, role)
		if err != nil {
			return nil, fmt.Errorf("list role policies: %w", err)
		}
		views = append(views, RoleView{Role: role, Policies: toPolicies(rules)})
	}
	return views, nil
}

// SetAdminRoles 覆盖设置管理员角色，只接受预置角色，校验失败时不做任何修改
func (s *Service) SetAdminRoles(adminID uint, roles []string) error {
	if adminID == 0 {
		return errors.New("authz: admin id is required")
	}
	if err := s.ready(); err != nil {
		return err
	}
	names := make([]string, 0, len(roles))
	for _, raw := range roles {
		name, err := NormalizeRole(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownRole, err)
		}
		if !IsBuiltinRole(name) {
			return fmt.Errorf("%w: %s", ErrUnknownRole, raw)
		}
		names = append(names, name)
	}

	subject := SubjectForAdmin(adminID)
	if _, err := s.enforcer.RemoveFilteredNamedGroupingPolicy("g", 0, subject); err != nil {
		return fmt.Errorf("clear admin roles: %w", err)
	}
	for _, name := range names {
		if _, err := s.enforcer.AddNamedGroupingPolicy("g", subject, name); err != nil {
			return fmt.Errorf("assign admin role: %w", err)
		}
	}
	return nil
}

// GetAdminRoles 查询管理员直接绑定的角色，按名称排序
func (s *Service) GetAdminRoles(adminID uint) ([]string, error) {
	if adminID == 0 {
		return nil, errors.New("authz: admin id is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	roles, err := s.enforcer.GetRolesForUser(SubjectForAdmin(adminID))
	if err != nil {
		return nil, fmt.Errorf("get admin roles: %w", err)
	}
	out := roles[:0]
	for _, role := range roles {
		if strings.HasPrefix(role, rolePrefix) {
			out = append(out, role)
		}
	}
	sort.Strings(out)
	return out, nil
}

func toPolicies(rules [][]string) []Policy {
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) >= 3 {
			policies = append(policies, Policy{Subject: rule[0], Object: NormalizeObject(rule[1]), Action: NormalizeAction(rule[2])})
		}
	}
	sort.Slice(policies, func(i, j int) bool {
		a, b := policies[i], policies[j]
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Action < b.Action
	})
	return policies
}
