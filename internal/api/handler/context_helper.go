package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vega2004/modulo-hora-espacio/internal/session"
	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
	"github.com/vega2004/modulo-hora-espacio/pkg/response"
)

// MustGetSession 从 Gin 上下文中安全提取门户会话。
// 如果 JWT 中间件未正确注入 session，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get("session")
	if !exists {
		response.Unauthorized(c, 10002, "No autenticado")
		return nil, false
	}
	sess, ok := v.(*session.Session)
	if !ok || sess == nil {
		response.Unauthorized(c, 10002, "No autenticado")
		return nil, false
	}
	return sess, true
}

// tokenExp 当前访问令牌的过期时间，未注入时返回零值
func tokenExp(c *gin.Context) time.Time {
	v, _ := c.Get("token_exp")
	t, _ := v.(time.Time)
	return t
}

// parseID 解析路径参数 :id，必须为正整数
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "ID inválido")
		return 0, false
	}
	return id, true
}

// handleBindError 参数绑定失败：请求体超限返回 413，其余返回 400
func handleBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "El cuerpo de la solicitud es demasiado grande")
		return
	}
	response.BadRequest(c, 10001, "Parámetros inválidos")
}

// handleRemoteError 远端错误分类 → HTTP 响应，供各模块 handleXxxError 兜底
func handleRemoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		response.Unauthorized(c, 10003, "El servidor de horarios rechazó la sesión, inicia sesión de nuevo")
	case errors.Is(err, pkgerrors.ErrConflict):
		response.Conflict(c, 10006, "El registro está en uso o ya existe")
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, 10007, "Recurso no encontrado")
	case errors.Is(err, pkgerrors.ErrUpstream):
		response.BadGateway(c)
	default:
		response.InternalError(c)
	}
}
