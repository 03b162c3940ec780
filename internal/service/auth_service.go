package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vega2004/modulo-hora-espacio/config"
	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/model"
	"github.com/vega2004/modulo-hora-espacio/internal/remote"
	"github.com/vega2004/modulo-hora-espacio/internal/repository"
	"github.com/vega2004/modulo-hora-espacio/internal/session"
	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
	"github.com/vega2004/modulo-hora-espacio/pkg/jwt"
)

// ── 认证模块业务错误 ──

var (
	ErrLoginFieldsRequired = errors.New("邮箱和密码不能为空")
	ErrEmailTooShort       = errors.New("邮箱长度不能少于 9 个字符")
	ErrPasswordTooShort    = errors.New("密码长度不能少于 8 个字符")
	ErrInvalidCredentials  = errors.New("邮箱或密码错误")
	ErrNameTooShort        = errors.New("姓名长度不能少于 3 个字符")
	ErrInvalidEmail        = errors.New("邮箱格式无效")
	ErrPasswordMismatch    = errors.New("两次输入的密码不一致")
	ErrFieldHasSpaces      = errors.New("字段中不能包含空格")
	ErrEmailTaken          = errors.New("邮箱已被注册")
	ErrSessionNotFound     = errors.New("会话不存在")
	ErrSessionRevoked      = errors.New("会话已注销")
	ErrSessionExpired      = errors.New("会话已过期")
)

const (
	minEmailLen    = 9
	minPasswordLen = 8
	minNameLen     = 3
)

// TokenSealer 远端 Token 加解密
type TokenSealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// TokenBlacklist 门户令牌黑名单
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) error
	Resolve(ctx context.Context, sessionID string) (*session.Session, error)
	Logout(ctx context.Context, sess *session.Session, tokenExpiresAt time.Time) error
	Me(sess *session.Session) *dto.MeResponse
	PurgeExpired(ctx context.Context) (int64, error)
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	api       remote.AuthAPI
	jwtMgr    *jwt.Manager
	sealer    TokenSealer
	blacklist TokenBlacklist
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService 创建 AuthService 实例
// blacklist 可为 nil（Redis 不可用时仅依赖数据库注销状态）
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	api remote.AuthAPI,
	jwtMgr *jwt.Manager,
	sealer TokenSealer,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		api:       api,
		jwtMgr:    jwtMgr,
		sealer:    sealer,
		blacklist: blacklist,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. 本地校验
	if req.Email == "" || req.Password == "" {
		return nil, ErrLoginFieldsRequired
	}
	if utf8.RuneCountInString(req.Email) < minEmailLen {
		return nil, ErrEmailTooShort
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	// 2. 远端登录
	res, err := s.api.Login(ctx, remote.Credentials{Email: req.Email, Pass: req.Password})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrUnauthorized) || errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("远端登录失败", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	// 3. 加密远端 Token 并保存会话
	sealed, err := s.sealer.Seal([]byte(res.Token))
	if err != nil {
		s.logger.Error("加密远端 Token 失败", zap.Error(err))
		return nil, err
	}

	now := s.now()
	ps := &model.PortalSession{
		SessionID:   uuid.NewString(),
		Email:       req.Email,
		DisplayName: res.Nombre,
		SealedToken: sealed,
		ExpiresAt:   now.Add(s.cfg.Auth.SessionTTL),
	}
	if err := s.repo.Session.Create(ctx, ps); err != nil {
		s.logger.Error("保存会话失败", zap.Error(err))
		return nil, err
	}

	// 4. 签发门户令牌
	token, exp, err := s.jwtMgr.GenerateAccessToken(ps.SessionID, ps.DisplayName, ps.Email, ps.ExpiresAt)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户登录成功", zap.String("session_id", ps.SessionID), zap.String("email", ps.Email))

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(exp.Sub(now).Seconds()),
		ExpiresAt:   exp.UTC().Format(time.RFC3339),
		Nombre:      ps.DisplayName,
	}, nil
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	if err := s.validateRegister(req); err != nil {
		return err
	}

	err := s.api.Register(ctx, remote.Registration{
		Nombre:    strings.TrimSpace(req.Nombre),
		Apellidos: strings.TrimSpace(req.Apellidos),
		Email:     req.Email,
		Pass:      req.Password,
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrConflict) {
			return ErrEmailTaken
		}
		s.logger.Error("远端注册失败", zap.String("email", req.Email), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) validateRegister(req *dto.RegisterRequest) error {
	if utf8.RuneCountInString(strings.TrimSpace(req.Nombre)) < minNameLen ||
		utf8.RuneCountInString(strings.TrimSpace(req.Apellidos)) < minNameLen {
		return ErrNameTooShort
	}
	if err := s.validate.Var(req.Email, "required,email"); err != nil {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Password)) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	for _, f := range []string{req.Nombre, req.Apellidos, req.Email, req.Password, req.ConfirmPassword} {
		if strings.IndexFunc(f, unicode.IsSpace) >= 0 {
			return ErrFieldHasSpaces
		}
	}
	return nil
}

// ────────────────────── Resolve ──────────────────────

// Resolve 由会话 ID 还原 session.Session（含解密后的远端 Token）
func (s *authService) Resolve(ctx context.Context, sessionID string) (*session.Session, error) {
	ps, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	if ps.Revoked() {
		return nil, ErrSessionRevoked
	}
	if ps.Expired(s.now()) {
		return nil, ErrSessionExpired
	}

	token, err := s.sealer.Open(ps.SealedToken)
	if err != nil {
		s.logger.Warn("解密远端 Token 失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSessionRevoked, err)
	}

	return &session.Session{
		ID:          ps.SessionID,
		Token:       string(token),
		DisplayName: ps.DisplayName,
		Email:       ps.Email,
		ExpiresAt:   ps.ExpiresAt,
	}, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, sess *session.Session, tokenExpiresAt time.Time) error {
	if sess == nil {
		return session.ErrNoSession
	}

	now := s.now()
	if err := s.repo.Session.Revoke(ctx, sess.ID, now); err != nil {
		s.logger.Error("注销会话失败", zap.String("session_id", sess.ID), zap.Error(err))
		return err
	}

	if s.blacklist != nil {
		if err := s.blacklist.BlacklistToken(ctx, sess.ID, tokenExpiresAt.Sub(now)); err != nil {
			// 数据库已记录注销，黑名单写入失败不影响结果
			s.logger.Warn("写入令牌黑名单失败", zap.String("session_id", sess.ID), zap.Error(err))
		}
	}

	s.logger.Info("用户已退出", zap.String("session_id", sess.ID))
	return nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(sess *session.Session) *dto.MeResponse {
	return &dto.MeResponse{
		Nombre:    sess.DisplayName,
		Email:     sess.Email,
		ExpiresAt: sess.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// ────────────────────── PurgeExpired ──────────────────────

// PurgeExpired 删除已过期的会话记录
func (s *authService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.Session.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("清理过期会话失败", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		s.logger.Info("已清理过期会话", zap.Int64("count", n))
	}
	return n, nil
}
