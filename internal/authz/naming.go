package authz

import (
	"errors"
	"strconv"
	"strings"
)

const (
	apiV1Prefix = "/api/v1"
	rolePrefix  = "role:"
)

// SubjectForAdmin 管理员主体标识 admin:<id>
func SubjectForAdmin(adminID uint) string {
	return "admin:" + strconv.FormatUint(uint64(adminID), 10)
}

// NormalizeRole 规范化角色名：小写、空格转下划线并补全 role: 前缀
func NormalizeRole(role string) (string, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(role)), " ", "_")
	name = strings.TrimPrefix(name, rolePrefix)
	if name == "" {
		return "", errors.New("role is required")
	}
	return rolePrefix + name, nil
}

// NormalizeObject 规范化资源路径，去掉 /api/v1 前缀
func NormalizeObject(object string) string {
	path := strings.TrimSpace(object)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == apiV1Prefix {
		return "/"
	}
	if strings.HasPrefix(path, apiV1Prefix+"/") {
		return path[len(apiV1Prefix):]
	}
	return path
}

// NormalizeAction 规范化 HTTP 动作
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
