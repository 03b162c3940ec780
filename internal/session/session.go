package session

import (
	"errors"
	"time"
)

// ErrNoSession 上下文中没有已登录会话
var ErrNoSession = errors.New("no portal session")

// Session 门户会话：远端 API 的 Bearer Token 与显示名称
//
// 会话对象由认证中间件解析后显式传递给 Service 与远端客户端，不从任何全局存储读取。
type Session struct {
	ID          string
	Token       string
	DisplayName string
	Email       string
	ExpiresAt   time.Time
}

// Valid 会话在 now 时刻是否可用
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}

// Bearer Authorization 头的值
func (s *Session) Bearer() string {
	if s == nil || s.Token == "" {
		return ""
	}
	return "Bearer " + s.Token
}
