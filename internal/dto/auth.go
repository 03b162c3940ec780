package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Nombre          string `json:"nombre"`
	Apellidos       string `json:"apellidos"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginResponse 登录成功响应
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // 秒
	ExpiresAt   string `json:"expires_at"`
	Nombre      string `json:"nombre"`
}

// MeResponse 当前会话信息
type MeResponse struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at"`
}
