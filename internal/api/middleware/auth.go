package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/internal/service"
	"github.com/vega2004/modulo-hora-espacio/internal/session"
	"github.com/vega2004/modulo-hora-espacio/pkg/jwt"
	"github.com/vega2004/modulo-hora-espacio/pkg/response"
)

// TokenParser 门户访问令牌解析
type TokenParser interface {
	ParseToken(tokenString string) (*jwt.Claims, error)
}

// SessionResolver 由会话 ID 还原门户会话
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*session.Session, error)
}

// BlacklistChecker 令牌黑名单查询
type BlacklistChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth 认证中间件
// 从 Authorization: Bearer <token> 中提取门户令牌，依次检查黑名单与会话状态，
// 通过后把 *session.Session 注入上下文（key: "session"）。
// blacklist 为 nil 或查询出错时跳过黑名单，注销状态仍由会话表判定。
func JWTAuth(parser TokenParser, resolver SessionResolver, blacklist BlacklistChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "Falta el encabezado de autorización")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, 10002, "Formato de autorización inválido")
			c.Abort()
			return
		}

		claims, err := parser.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token inválido o expirado")
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "Tipo de token inválido")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		if blacklist != nil {
			revoked, err := blacklist.IsBlacklisted(ctx, claims.SessionID())
			if err != nil {
				logger.Warn("查询令牌黑名单失败，已跳过", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, 10002, "La sesión ha finalizado, inicia sesión de nuevo")
				c.Abort()
				return
			}
		}

		sess, err := resolver.Resolve(ctx, claims.SessionID())
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) ||
				errors.Is(err, service.ErrSessionRevoked) ||
				errors.Is(err, service.ErrSessionExpired) {
				response.Unauthorized(c, 10002, "La sesión ha finalizado, inicia sesión de nuevo")
				c.Abort()
				return
			}
			logger.Error("还原会话失败", zap.String("session_id", claims.SessionID()), zap.Error(err))
			response.InternalError(c)
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Set("token_exp", claims.ExpiresAt.Time)

		c.Next()
	}
}
