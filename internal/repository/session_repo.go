package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vega2004/modulo-hora-espacio/internal/model"
)

// SessionRepository 门户会话数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, sess *model.PortalSession) error
	GetByID(ctx context.Context, id string) (*model.PortalSession, error)
	Revoke(ctx context.Context, id string, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, sess *model.PortalSession) error {
	return r.db.WithContext(ctx).Create(sess).Error
}

// GetByID 不存在时返回 gorm.ErrRecordNotFound
func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.PortalSession, error) {
	var sess model.PortalSession
	err := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		First(&sess).Error
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Revoke 标记注销，已注销的会话保持原注销时间
func (r *sessionRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.PortalSession{}).
		Where("session_id = ? AND revoked_at IS NULL", id).
		Updates(map[string]interface{}{
			"revoked_at": at,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

// DeleteExpired 清理 before 之前过期的会话，返回删除行数
func (r *sessionRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&model.PortalSession{})
	return res.RowsAffected, res.Error
}
