package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vega2004/modulo-hora-espacio/config"
)

const issuer = "hora-espacio-portal"

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

// Claims 门户访问令牌声明
// jti 即门户会话 ID，令牌本身不携带远端 Token
type Claims struct {
	DisplayName string `json:"nombre"`
	Email       string `json:"email"`
	TokenType   string `json:"token_type"`
	jwtv5.RegisteredClaims
}

// SessionID 令牌绑定的门户会话 ID
func (c *Claims) SessionID() string {
	return c.ID
}

// Manager JWT 管理器
type Manager struct {
	secret         []byte
	accessTokenTTL time.Duration
}

// NewManager 创建 JWT 管理器
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:         []byte(cfg.JWTSecret),
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// GenerateAccessToken 为门户会话签发访问令牌
// 令牌过期时间取 TTL 与会话过期时间中较早者
func (m *Manager) GenerateAccessToken(sessionID, displayName, email string, sessionExpiresAt time.Time) (string, time.Time, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return "", time.Time{}, ErrTokenInvalid
	}

	now := time.Now()
	exp := now.Add(m.accessTokenTTL)
	if !sessionExpiresAt.IsZero() && sessionExpiresAt.Before(exp) {
		exp = sessionExpiresAt
	}

	claims := Claims{
		DisplayName: displayName,
		Email:       email,
		TokenType:   "access",
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        sessionID,
			Subject:   email,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken 解析并验证 Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
