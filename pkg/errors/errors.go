package errors

import "errors"

// 跨层共享的远端错误分类，由远端客户端根据 HTTP 状态码映射
var (
	// ErrUpstream 远端不可达、超时或返回 5xx 等非预期状态
	ErrUpstream = errors.New("远端服务请求失败")
	// ErrUnauthorized 远端拒绝了当前会话的 Token（401/403）
	ErrUnauthorized = errors.New("远端认证失败")
	// ErrNotFound 远端资源不存在（404）
	ErrNotFound = errors.New("远端资源不存在")
	// ErrConflict 远端判定数据冲突（409）
	ErrConflict = errors.New("远端数据冲突")
)
