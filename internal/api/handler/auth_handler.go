package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/service"
	"github.com/vega2004/modulo-hora-espacio/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 门户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Register 在远端注册账号，成功后需重新登录
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.authSvc.Register(c.Request.Context(), &req); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, nil)
}

// Logout 注销当前会话
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sess, tokenExp(c)); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Me 当前会话信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	response.OK(c, h.authSvc.Me(sess))
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLoginFieldsRequired):
		response.BadRequest(c, 11002, "Correo y contraseña son obligatorios")
	case errors.Is(err, service.ErrEmailTooShort):
		response.BadRequest(c, 11003, "El correo debe tener al menos 9 caracteres")
	case errors.Is(err, service.ErrPasswordTooShort):
		response.BadRequest(c, 11004, "La contraseña debe tener al menos 8 caracteres")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "Correo o contraseña incorrectos")
	case errors.Is(err, service.ErrNameTooShort):
		response.BadRequest(c, 11005, "Nombre y apellidos deben tener al menos 3 caracteres")
	case errors.Is(err, service.ErrInvalidEmail):
		response.BadRequest(c, 11006, "Correo electrónico inválido")
	case errors.Is(err, service.ErrPasswordMismatch):
		response.BadRequest(c, 11007, "Las contraseñas no coinciden")
	case errors.Is(err, service.ErrFieldHasSpaces):
		response.BadRequest(c, 11008, "Los campos no pueden contener espacios")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11009, "El correo ya está registrado")
	default:
		handleRemoteError(c, err)
	}
}
